package elevenlabs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"shorts_automation/utils"
)

const (
	BaseURL = "https://api.elevenlabs.io/v1"

	// DefaultVoiceID is Frederick Surrey, a calm narration voice.
	DefaultVoiceID = "j9jfwdrw7BRfcR43Qohk"
)

type TTSRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings map[string]interface{} `json:"voice_settings"`
}

type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: BaseURL,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

// TextToSpeech synthesizes the text with the given voice and returns the raw
// mp3 bytes.
func (c *Client) TextToSpeech(text, voiceID string) ([]byte, error) {
	requestBody := TTSRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2", // Default model
		VoiceSettings: map[string]interface{}{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.BaseURL, voiceID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	return audioData, nil
}

// Synthesize writes the narration mp3 to outputPath and returns its measured
// duration in seconds.
func (c *Client) Synthesize(text, voiceID, outputPath string) (float64, error) {
	audioData, err := c.TextToSpeech(text, voiceID)
	if err != nil {
		return 0, err
	}

	if err := utils.EnsureDirectoryExists(filepath.Dir(outputPath)); err != nil {
		return 0, fmt.Errorf("error creating output directory: %v", err)
	}
	if err := os.WriteFile(outputPath, audioData, 0644); err != nil {
		return 0, fmt.Errorf("error saving audio file: %v", err)
	}

	duration, err := utils.GetMediaDuration(outputPath)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// GetVoices lists the voices available to the account.
func (c *Client) GetVoices() ([]map[string]interface{}, error) {
	url := fmt.Sprintf("%s/voices", c.BaseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	voices, ok := result["voices"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response format")
	}

	var voiceList []map[string]interface{}
	for _, v := range voices {
		if voice, ok := v.(map[string]interface{}); ok {
			voiceList = append(voiceList, voice)
		}
	}

	return voiceList, nil
}
