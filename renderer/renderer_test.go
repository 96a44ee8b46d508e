package renderer

import (
	"math/rand"
	"strings"
	"testing"
)

func TestPickStartOffset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		offset, err := pickStartOffset(rng, 300.0, 45.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if offset < 0 || offset+45.0 > 300.0 {
			t.Fatalf("offset %.3f leaves the narration hanging past the clip end", offset)
		}
	}
}

func TestPickStartOffsetExactFit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	offset, err := pickStartOffset(rng, 45.0, 45.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != 0 {
		t.Errorf("exact-fit clip must start at 0, got %.3f", offset)
	}
}

func TestPickStartOffsetBackgroundTooShort(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := pickStartOffset(rng, 30.0, 45.0); err == nil {
		t.Fatal("expected an error when the background is shorter than the narration")
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	req := RenderRequest{
		BackgroundPath: "background.mp4",
		AudioPath:      "narration.mp3",
		AudioDuration:  42.5,
		CaptionFilter:  "drawtext=text='hi':enable='between(t,0.000,42.500)'",
		OutputPath:     "out.mp4",
	}
	args := buildFFmpegArgs(req, 12.25)
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-ss 12.250") {
		t.Errorf("start offset missing: %q", joined)
	}
	if !strings.Contains(joined, "-t 42.500") {
		t.Errorf("trim duration missing: %q", joined)
	}

	var filter string
	for i, a := range args {
		if a == "-filter_complex" && i+1 < len(args) {
			filter = args[i+1]
		}
	}
	if !strings.HasPrefix(filter, "[0:v]crop=ih*1080/1920:ih,scale=1080:1920,") {
		t.Errorf("crop/scale chain missing or out of order: %q", filter)
	}
	if !strings.Contains(filter, req.CaptionFilter) {
		t.Errorf("caption chain not appended: %q", filter)
	}
	if !strings.HasSuffix(filter, "[v]") {
		t.Errorf("filter should label its output [v]: %q", filter)
	}

	if !strings.Contains(joined, "-map [v] -map 1:a") {
		t.Errorf("stream mapping missing: %q", joined)
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output path must come last, got %q", args[len(args)-1])
	}
}

func TestBuildFFmpegArgsNoCaptions(t *testing.T) {
	req := RenderRequest{
		BackgroundPath: "background.mp4",
		AudioPath:      "narration.mp3",
		AudioDuration:  10,
		OutputPath:     "out.mp4",
	}
	args := buildFFmpegArgs(req, 0)

	for i, a := range args {
		if a == "-filter_complex" {
			filter := args[i+1]
			if strings.Contains(filter, "drawtext") {
				t.Errorf("crop-only render should have no drawtext: %q", filter)
			}
			if filter != "[0:v]crop=ih*1080/1920:ih,scale=1080:1920[v]" {
				t.Errorf("unexpected crop-only filter: %q", filter)
			}
		}
	}
}
