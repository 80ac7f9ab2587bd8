package audio

import (
	"errors"
	"testing"
	"time"
)

func TestBuildArgsMP3(t *testing.T) {
	f := NewFFmpeg()
	args := f.BuildArgs("/in/mix.mp3", 60*time.Minute, 90*time.Second, "/in/mix_part2.mp3")

	expected := []string{
		"-y",
		"-v", "error",
		"-ss", "3600.000",
		"-t", "90.000",
		"-i", "/in/mix.mp3",
		"-vn",
		"-map_metadata", "0",
		"-c:a", MP3Codec,
		"-b:a", DefaultBitrate,
		"/in/mix_part2.mp3",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(args), args)
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestBuildArgsOtherFormatUsesDefaultEncoder(t *testing.T) {
	args := NewFFmpeg().BuildArgs("/in/a.ogg", 0, time.Minute, "/in/a_part1.ogg")
	for _, a := range args {
		if a == MP3Codec {
			t.Fatalf("did not expect mp3 encoder for ogg output: %v", args)
		}
	}
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration([]byte(`{"format":{"duration":"3725.123456"}}`))
	if err != nil {
		t.Fatalf("parseProbeDuration returned error: %v", err)
	}
	if d != 3725123*time.Millisecond {
		t.Fatalf("unexpected duration: %v", d)
	}
}

func TestParseProbeDurationMissing(t *testing.T) {
	_, err := parseProbeDuration([]byte(`{"format":{}}`))
	if !errors.Is(err, ErrNoDuration) {
		t.Fatalf("expected ErrNoDuration, got %v", err)
	}

	if _, err := parseProbeDuration([]byte(`{"format":{"duration":"bad"}}`)); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
