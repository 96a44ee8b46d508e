package elevenlabs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetVoices(t *testing.T) {
	var gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAPIKey = r.Header.Get("xi-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voices": [
			{"voice_id": "v1", "name": "Frederick Surrey"},
			{"voice_id": "v2", "name": "Calm Narrator"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.BaseURL = server.URL

	voices, err := client.GetVoices()
	if err != nil {
		t.Fatalf("GetVoices failed: %v", err)
	}

	if gotAPIKey != "test-key" {
		t.Errorf("xi-api-key = %q, want test-key", gotAPIKey)
	}
	if len(voices) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(voices))
	}
	if voices[0]["voice_id"] != "v1" || voices[0]["name"] != "Frederick Surrey" {
		t.Errorf("unexpected first voice: %v", voices[0])
	}
}

func TestGetVoicesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key")
	client.BaseURL = server.URL

	if _, err := client.GetVoices(); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestTextToSpeech(t *testing.T) {
	audio := []byte("mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Accept") != "audio/mpeg" {
			t.Errorf("Accept = %q, want audio/mpeg", r.Header.Get("Accept"))
		}

		var req TTSRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Text != "hello there" {
			t.Errorf("text = %q, want hello there", req.Text)
		}
		if req.ModelID != "eleven_multilingual_v2" {
			t.Errorf("model = %q, want eleven_multilingual_v2", req.ModelID)
		}

		w.Write(audio)
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.BaseURL = server.URL

	got, err := client.TextToSpeech("hello there", "voice-123")
	if err != nil {
		t.Fatalf("TextToSpeech failed: %v", err)
	}
	if !bytes.Equal(got, audio) {
		t.Errorf("audio bytes = %q, want %q", got, audio)
	}
}
