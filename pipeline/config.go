package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config gathers everything the pipeline needs from the environment, so none
// of the collaborators reach for ambient globals. Mains call godotenv.Load
// before LoadConfig.
type Config struct {
	ElevenLabsAPIKey string
	VoiceID          string

	Subreddits   []string
	UserAgent    string
	MinPostChars int
	MaxPostChars int

	CaptionMaxWords   int
	CaptionMaxChars   int
	CaptionMinSeconds float64
	CaptionStyle      string

	BackgroundVideo string
	OutputDir       string
	TempDir         string

	MongoURI string
	MongoDB  string

	DriveAccessToken string
	DriveFolderID    string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		VoiceID:          os.Getenv("VOICE_ID"),
		UserAgent:        os.Getenv("REDDIT_USER_AGENT"),
		BackgroundVideo:  os.Getenv("BACKGROUND_VIDEO"),
		OutputDir:        os.Getenv("OUTPUT_DIR"),
		TempDir:          os.Getenv("TEMP_DIR"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          os.Getenv("MONGO_DB"),
		DriveAccessToken: os.Getenv("DRIVE_ACCESS_TOKEN"),
		DriveFolderID:    os.Getenv("DRIVE_FOLDER_ID"),
		CaptionStyle:     os.Getenv("CAPTION_STYLE"),
	}

	if config.ElevenLabsAPIKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY is not set")
	}
	if config.BackgroundVideo == "" {
		return nil, fmt.Errorf("BACKGROUND_VIDEO is not set")
	}

	subreddits := os.Getenv("SUBREDDITS")
	if subreddits == "" {
		subreddits = "shortstories"
	}
	for _, s := range strings.Split(subreddits, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			config.Subreddits = append(config.Subreddits, s)
		}
	}

	if config.UserAgent == "" {
		config.UserAgent = "shorts-automation/1.0"
	}
	if config.OutputDir == "" {
		config.OutputDir = "output"
	}
	if config.TempDir == "" {
		config.TempDir = "temp"
	}
	if config.MongoDB == "" {
		config.MongoDB = "shorts_automation"
	}

	config.MinPostChars = envInt("MIN_POST_CHARS", 300)
	config.MaxPostChars = envInt("MAX_POST_CHARS", 1500)
	config.CaptionMaxWords = envInt("CAPTION_MAX_WORDS", 4)
	config.CaptionMaxChars = envInt("CAPTION_MAX_CHARS", 30)
	config.CaptionMinSeconds = envFloat("CAPTION_MIN_SECONDS", 0.5)

	return config, nil
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
