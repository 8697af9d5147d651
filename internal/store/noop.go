package store

import "context"

// NoopStore is a no-op implementation of Store used when history is disabled.
// It silently discards all writes and returns empty results for reads.
type NoopStore struct{}

func (s *NoopStore) Save(ctx context.Context, g *Generation) error {
	return nil
}

func (s *NoopStore) Get(ctx context.Context, id int64) (*Generation, error) {
	return nil, nil
}

func (s *NoopStore) Latest(ctx context.Context, kind string) (*Generation, error) {
	return nil, nil
}

func (s *NoopStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	return nil, nil
}

func (s *NoopStore) Delete(ctx context.Context, id int64) error {
	return nil
}

func (s *NoopStore) Close() error {
	return nil
}
