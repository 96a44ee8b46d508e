package pipeline

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shorts_automation/captions"
	"shorts_automation/elevenlabs"
	"shorts_automation/gdrive"
	"shorts_automation/reddit"
	"shorts_automation/renderer"
	"shorts_automation/utils"
)

// RunResult is what one successful pipeline run produced.
type RunResult struct {
	RunID     string
	Post      reddit.Post
	VideoPath string
	ShareLink string
	Duration  float64
}

// Pipeline wires the collaborators together: reddit for text, elevenlabs for
// narration, the captions core for the filter chain, ffmpeg for the render
// and Drive for the upload. Each stage failure aborts the run.
type Pipeline struct {
	cfg      *Config
	reddit   *reddit.Client
	tts      *elevenlabs.Client
	renderer *renderer.Renderer
	drive    *gdrive.Client
	history  *History
	rng      *rand.Rand
}

func New(cfg *Config) (*Pipeline, error) {
	history, err := NewHistory(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	p := &Pipeline{
		cfg:      cfg,
		reddit:   reddit.NewClient(cfg.UserAgent),
		tts:      elevenlabs.NewClient(cfg.ElevenLabsAPIKey),
		renderer: renderer.New(rng),
		history:  history,
		rng:      rng,
	}
	// Like the Mongo history, the Drive upload is a configuration toggle:
	// an empty DRIVE_ACCESS_TOKEN leaves the rendered file local-only and
	// the result's ShareLink empty.
	if cfg.DriveAccessToken != "" {
		p.drive = gdrive.NewClient(cfg.DriveAccessToken)
	}
	return p, nil
}

func (p *Pipeline) Close() {
	if p.history != nil {
		p.history.Close()
	}
}

// Run executes one full pipeline pass: pick a post, synthesize narration,
// build captions, render and upload.
func (p *Pipeline) Run() (*RunResult, error) {
	runID := uuid.New().String()
	log.Printf("=== Starting run %s ===", runID)

	if p.history != nil {
		p.history.CreateRun(runID)
	}

	result, err := p.run(runID)
	if err != nil {
		if p.history != nil {
			p.history.FailRun(runID, err.Error())
		}
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) run(runID string) (*RunResult, error) {
	post, err := p.selectPost()
	if err != nil {
		return nil, err
	}
	log.Printf("Selected post %s from r/%s: %s", post.ID, post.Subreddit, post.Title)

	tempDir := filepath.Join(p.cfg.TempDir, runID)
	if err := utils.EnsureDirectoryExists(tempDir); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := utils.EnsureDirectoryExists(p.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}

	// Narrate the title first, then the body.
	narrationText := strings.TrimSpace(post.Title + ". " + post.SelfText)

	voiceID := p.cfg.VoiceID
	if voiceID == "" {
		voiceID = elevenlabs.DefaultVoiceID
	}

	audioPath := filepath.Join(tempDir, "narration.mp3")
	log.Printf("Synthesizing narration (%d chars) with voice %s", len(narrationText), voiceID)
	duration, err := p.tts.Synthesize(narrationText, voiceID, audioPath)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %v", err)
	}
	log.Printf("Narration duration: %.2f seconds", duration)

	fragments := captions.ChunkText(narrationText, p.cfg.CaptionMaxWords, p.cfg.CaptionMaxChars)
	timed := captions.AllocateTimings(fragments, duration, p.cfg.CaptionMinSeconds)
	filter := captions.BuildCaptionFilter(timed, captions.StyleByName(p.cfg.CaptionStyle))
	log.Printf("Built %d caption windows", len(timed))

	outputPath := filepath.Join(p.cfg.OutputDir,
		fmt.Sprintf("%s_%s.mp4", utils.SanitizeFilename(post.Title), runID[:8]))

	err = p.renderer.Render(renderer.RenderRequest{
		BackgroundPath: p.cfg.BackgroundVideo,
		AudioPath:      audioPath,
		AudioDuration:  duration,
		CaptionFilter:  filter,
		OutputPath:     outputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("render failed: %v", err)
	}

	shareLink := ""
	if p.drive == nil {
		log.Printf("Drive not configured, keeping %s local only", outputPath)
	} else {
		log.Printf("Uploading %s to Drive", outputPath)
		file, err := p.drive.Upload(outputPath, filepath.Base(outputPath), p.cfg.DriveFolderID)
		if err != nil {
			return nil, fmt.Errorf("upload failed: %v", err)
		}
		if err := p.drive.ShareWithLink(file.ID); err != nil {
			return nil, fmt.Errorf("sharing failed: %v", err)
		}
		shareLink = file.WebViewLink
		log.Printf("Uploaded: %s", shareLink)
	}

	if p.history != nil {
		p.history.MarkPostUsed(post)
		p.history.CompleteRun(runID, post.ID, outputPath, shareLink)
	}

	log.Printf("=== Run %s completed ===", runID)
	return &RunResult{
		RunID:     runID,
		Post:      post,
		VideoPath: outputPath,
		ShareLink: shareLink,
		Duration:  duration,
	}, nil
}

// selectPost scans the configured subreddits in order and hands back the
// first shuffled candidate that passes the filter and hasn't been used yet.
func (p *Pipeline) selectPost() (reddit.Post, error) {
	filter := reddit.Filter{
		MinChars: p.cfg.MinPostChars,
		MaxChars: p.cfg.MaxPostChars,
	}

	for _, subreddit := range p.cfg.Subreddits {
		posts, err := p.reddit.TopPosts(subreddit, 50)
		if err != nil {
			log.Printf("Warning: failed to fetch r/%s: %v", subreddit, err)
			continue
		}

		queue := reddit.NewCandidateQueue(posts, filter, p.rng)
		log.Printf("r/%s: %d candidates after filtering", subreddit, queue.Remaining())

		for {
			post, ok := queue.Next()
			if !ok {
				break
			}
			if p.history != nil && p.history.IsPostUsed(post.ID) {
				log.Printf("Skipping already-used post %s", post.ID)
				continue
			}
			return post, nil
		}
	}

	return reddit.Post{}, fmt.Errorf("no suitable post found in %v", p.cfg.Subreddits)
}
