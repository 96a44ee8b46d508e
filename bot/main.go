package main

import (
	"log"

	"github.com/joho/godotenv"

	"shorts_automation/pipeline"
	"shorts_automation/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err := utils.ValidateFFmpegInstalled(); err != nil {
		log.Fatalf("Preflight failed: %v", err)
	}

	cfg, err := pipeline.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer p.Close()

	result, err := p.Run()
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("✓ Video created: %s", result.VideoPath)
	log.Printf("  Post: r/%s - %s", result.Post.Subreddit, result.Post.Title)
	log.Printf("  Narration: %.2f seconds", result.Duration)
	if result.ShareLink != "" {
		log.Printf("  Share link: %s", result.ShareLink)
	}
}
