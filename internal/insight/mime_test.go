package insight

import (
	"errors"
	"testing"
)

func TestDetectVideoMIME(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"talk.mp4", "video/mp4"},
		{"/home/user/clips/demo.MOV", "video/quicktime"},
		{"screen.webm", "video/webm"},
		{"rip.mkv", "video/x-matroska"},
		{"old.avi", "video/x-msvideo"},
		{"tape.mpg", "video/mpeg"},
	}
	for _, tt := range tests {
		got, err := DetectVideoMIME(tt.path)
		if err != nil {
			t.Errorf("DetectVideoMIME(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectVideoMIME(%q)=%q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDetectVideoMIMERejectsNonVideo(t *testing.T) {
	for _, path := range []string{"notes.txt", "paper.pdf", "song.mp3", "archive", "clip.mp4.bak"} {
		_, err := DetectVideoMIME(path)
		if !errors.Is(err, ErrNotVideo) {
			t.Errorf("DetectVideoMIME(%q) err=%v, want ErrNotVideo", path, err)
		}
	}
}
