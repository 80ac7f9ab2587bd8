package ytdl

import "testing"

func TestAudioOptions(t *testing.T) {
	opts := AudioOptions("/out/%(title)s.%(ext)s")

	if opts.Format != FormatBestAudio {
		t.Fatalf("unexpected format: %q", opts.Format)
	}
	if !opts.ExtractAudio {
		t.Fatal("expected audio extraction")
	}
	if opts.AudioFormat != "mp3" || opts.AudioQuality != "192K" {
		t.Fatalf("unexpected audio target: %s @ %s", opts.AudioFormat, opts.AudioQuality)
	}
	if opts.OutputTemplate != "/out/%(title)s.%(ext)s" {
		t.Fatalf("unexpected template: %q", opts.OutputTemplate)
	}
}

func TestVideoOptionsDoNotExtractAudio(t *testing.T) {
	opts := VideoOptions("v.%(ext)s")
	if opts.ExtractAudio || opts.Format != "" {
		t.Fatalf("unexpected video options: %+v", opts)
	}
}

func TestFinalPath(t *testing.T) {
	tests := []struct {
		reported string
		opts     Options
		want     string
	}{
		{"/out/Song.webm", AudioOptions(""), "/out/Song.mp3"},
		{"/out/Song.m4a", AudioOptions(""), "/out/Song.mp3"},
		{"/out/Clip.mp4", VideoOptions(""), "/out/Clip.mp4"},
	}

	for _, tt := range tests {
		if got := FinalPath(tt.reported, tt.opts); got != tt.want {
			t.Errorf("FinalPath(%q) = %q, want %q", tt.reported, got, tt.want)
		}
	}
}
