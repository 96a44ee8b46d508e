package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"shorts_automation/elevenlabs"
	"shorts_automation/pipeline"
)

// JobStatus tracks one background pipeline run triggered over the API.
type JobStatus struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	PostTitle string    `json:"post_title,omitempty"`
	VideoPath string    `json:"video_path,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	ShareLink string    `json:"share_link,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	jobs   = make(map[string]*JobStatus)
	jobsMu sync.RWMutex
	cfg    *pipeline.Config
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var err error
	cfg, err = pipeline.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	os.MkdirAll(cfg.OutputDir, 0755)
	os.MkdirAll(cfg.TempDir, 0755)

	r := mux.NewRouter()

	// API routes
	r.HandleFunc("/api/runs", startRunHandler).Methods("POST")
	r.HandleFunc("/api/runs", listRunsHandler).Methods("GET")
	r.HandleFunc("/api/runs/{runId}", getRunStatusHandler).Methods("GET")
	r.HandleFunc("/api/voices", listVoicesHandler).Methods("GET")
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Serve rendered videos
	r.PathPrefix("/videos/").Handler(http.StripPrefix("/videos/", http.FileServer(http.Dir(cfg.OutputDir))))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	fmt.Println("🎬 Shorts Automation API Server starting...")
	fmt.Printf("📡 Server running on http://localhost:%s\n", port)
	fmt.Println("📚 API Endpoints:")
	fmt.Println("   POST /api/runs - Start a pipeline run")
	fmt.Println("   GET  /api/runs - List all runs")
	fmt.Println("   GET  /api/runs/{runId} - Check run status")
	fmt.Println("   GET  /api/voices - List available narration voices")
	fmt.Println("   GET  /videos/{filename} - Download rendered videos")
	fmt.Println("   GET  /health - Health check")

	log.Fatal(http.ListenAndServe(":"+port, r))
}

func startRunHandler(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.New().String()
	job := &JobStatus{
		ID:        jobID,
		Status:    pipeline.StatusPending,
		CreatedAt: time.Now(),
	}

	jobsMu.Lock()
	jobs[jobID] = job
	jobsMu.Unlock()

	go executeRun(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"job_id":  jobID,
		"status":  pipeline.StatusPending,
		"message": "Pipeline run started",
	})
}

func executeRun(job *JobStatus) {
	defer func() {
		if rec := recover(); rec != nil {
			setJobFailed(job, fmt.Sprintf("Panic: %v", rec))
		}
	}()

	jobsMu.Lock()
	job.Status = pipeline.StatusProcessing
	job.Progress = 10
	jobsMu.Unlock()

	p, err := pipeline.New(cfg)
	if err != nil {
		setJobFailed(job, err.Error())
		return
	}
	defer p.Close()

	result, err := p.Run()
	if err != nil {
		setJobFailed(job, err.Error())
		return
	}

	jobsMu.Lock()
	job.Status = pipeline.StatusCompleted
	job.Progress = 100
	job.PostTitle = result.Post.Title
	job.VideoPath = result.VideoPath
	job.VideoURL = fmt.Sprintf("/videos/%s", filepath.Base(result.VideoPath))
	job.ShareLink = result.ShareLink
	jobsMu.Unlock()
}

func setJobFailed(job *JobStatus, errMsg string) {
	jobsMu.Lock()
	job.Status = pipeline.StatusFailed
	job.Error = errMsg
	jobsMu.Unlock()
	log.Printf("❌ Job %s failed: %s", job.ID, errMsg)
}

func getRunStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["runId"]

	// Copy the job while holding the lock; executeRun mutates the struct
	// fields under the write lock.
	jobsMu.RLock()
	job, exists := jobs[jobID]
	var snapshot JobStatus
	if exists {
		snapshot = *job
	}
	jobsMu.RUnlock()

	if !exists {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func listRunsHandler(w http.ResponseWriter, r *http.Request) {
	jobsMu.RLock()
	jobList := make([]JobStatus, 0, len(jobs))
	for _, job := range jobs {
		jobList = append(jobList, *job)
	}
	jobsMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobList)
}

func listVoicesHandler(w http.ResponseWriter, r *http.Request) {
	client := elevenlabs.NewClient(cfg.ElevenLabsAPIKey)
	voices, err := client.GetVoices()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"voices":  voices,
		"default": elevenlabs.DefaultVoiceID,
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ffmpegAvailable := true
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		ffmpegAvailable = false
	}

	jobsMu.RLock()
	activeJobs := 0
	for _, job := range jobs {
		if job.Status == pipeline.StatusPending || job.Status == pipeline.StatusProcessing {
			activeJobs++
		}
	}
	jobsMu.RUnlock()

	response := map[string]interface{}{
		"status":           "healthy",
		"timestamp":        time.Now().Format(time.RFC3339),
		"version":          "1.0.0",
		"ffmpeg_available": ffmpegAvailable,
		"active_jobs":      activeJobs,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
