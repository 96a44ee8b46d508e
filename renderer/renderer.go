package renderer

import (
	"fmt"
	"log"
	"math/rand"
	"os/exec"
	"strings"

	"shorts_automation/utils"
)

// RenderRequest carries everything one ffmpeg pass needs: the background
// clip, the narration audio with its measured duration, and the caption
// filter chain built by the captions package.
type RenderRequest struct {
	BackgroundPath string
	AudioPath      string
	AudioDuration  float64
	CaptionFilter  string
	OutputPath     string
	Width          int
	Height         int
}

type Renderer struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Renderer {
	return &Renderer{rng: rng}
}

// Render trims a random window out of the background clip, crops it to a
// vertical frame, burns the captions and muxes the narration audio, all in
// one ffmpeg invocation.
func (r *Renderer) Render(req RenderRequest) error {
	backgroundDuration, err := utils.GetMediaDuration(req.BackgroundPath)
	if err != nil {
		return err
	}

	offset, err := pickStartOffset(r.rng, backgroundDuration, req.AudioDuration)
	if err != nil {
		return err
	}

	args := buildFFmpegArgs(req, offset)

	log.Printf("FFmpeg command: ffmpeg %s", strings.Join(args, " "))
	log.Printf("Rendering %.2fs video from offset %.2fs of %s", req.AudioDuration, offset, req.BackgroundPath)

	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("FFmpeg output: %s", string(output))
		return fmt.Errorf("ffmpeg render failed: %v", err)
	}

	if !utils.FileExists(req.OutputPath) {
		return fmt.Errorf("output file was not created: %s", req.OutputPath)
	}

	log.Printf("✓ Rendered %s", req.OutputPath)
	return nil
}

// pickStartOffset chooses a uniform random start inside the background clip
// so the trimmed window still covers the whole narration.
func pickStartOffset(rng *rand.Rand, backgroundDuration, narrationDuration float64) (float64, error) {
	if backgroundDuration < narrationDuration {
		return 0, fmt.Errorf("background clip (%.1fs) is shorter than the narration (%.1fs)",
			backgroundDuration, narrationDuration)
	}
	return rng.Float64() * (backgroundDuration - narrationDuration), nil
}

func buildFFmpegArgs(req RenderRequest, offset float64) []string {
	width := req.Width
	height := req.Height
	if width <= 0 {
		width = 1080
	}
	if height <= 0 {
		height = 1920
	}

	// Crop the source to the target aspect before scaling, then chain the
	// caption directives onto the same stream.
	filter := fmt.Sprintf("[0:v]crop=ih*%d/%d:ih,scale=%d:%d", width, height, width, height)
	if req.CaptionFilter != "" {
		filter += "," + req.CaptionFilter
	}
	filter += "[v]"

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", offset),
		"-t", fmt.Sprintf("%.3f", req.AudioDuration),
		"-i", req.BackgroundPath,
		"-i", req.AudioPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "1:a",
		"-c:v", "libx264", "-preset", "medium", "-crf", "23",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac", "-b:a", "128k",
		"-shortest",
		req.OutputPath,
	}

	return args
}
