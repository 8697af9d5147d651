package cmd

import (
	"fmt"

	"github.com/samsaffron/vidbrief/internal/config"
	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/store"
	"github.com/samsaffron/vidbrief/internal/ui"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadConfigWithSetup loads the config, running the interactive setup wizard
// first when no usable configuration exists yet.
func loadConfigWithSetup() (*config.Config, error) {
	if config.NeedsSetup() {
		cfg, err := ui.RunSetupWizard()
		if err != nil {
			return nil, fmt.Errorf("setup cancelled: %w", err)
		}
		return cfg, nil
	}
	return loadConfig()
}

// applyProviderOverrides layers --provider/--model flag values on top of the
// loaded config. The provider flag accepts "name" or "name:model".
func applyProviderOverrides(cfg *config.Config, providerFlag, modelFlag string) error {
	if providerFlag != "" {
		name, model, err := insight.ParseProviderModel(providerFlag)
		if err != nil {
			return err
		}
		cfg.ApplyOverrides(name, model)
	}
	if modelFlag != "" {
		cfg.ApplyOverrides("", modelFlag)
	}
	return nil
}

// openHistory opens the generation history store at its configured location.
// When history is disabled in config the returned store discards all writes.
func openHistory(cfg *config.Config) (store.Store, error) {
	path, err := cfg.GetHistoryPath()
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	return store.NewStore(path, cfg.History.Disabled)
}
