package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shorts_automation/reddit"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// History keeps run records and used-post IDs in MongoDB so the bot never
// narrates the same post twice.
type History struct {
	client *mongo.Client
	runs   *mongo.Collection
	posts  *mongo.Collection
}

// NewHistory connects to MongoDB. An empty URI disables persistence and
// returns nil without error; callers must nil-check.
func NewHistory(uri, dbName string) (*History, error) {
	if uri == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	database := client.Database(dbName)
	return &History{
		client: client,
		runs:   database.Collection("runs"),
		posts:  database.Collection("used_posts"),
	}, nil
}

func (h *History) Close() {
	h.client.Disconnect(context.Background())
}

// IsPostUsed reports whether the post has already been turned into a video.
func (h *History) IsPostUsed(postID string) bool {
	count, err := h.posts.CountDocuments(context.Background(), bson.M{"post_id": postID})
	if err != nil {
		fmt.Printf("Warning: failed to check used post %s: %v\n", postID, err)
		return false
	}
	return count > 0
}

func (h *History) MarkPostUsed(post reddit.Post) {
	_, err := h.posts.InsertOne(context.Background(), bson.M{
		"post_id":   post.ID,
		"title":     post.Title,
		"subreddit": post.Subreddit,
		"permalink": post.Permalink,
		"used_at":   time.Now(),
	})
	if err != nil {
		fmt.Printf("Warning: failed to mark post %s as used: %v\n", post.ID, err)
	}
}

func (h *History) CreateRun(runID string) {
	_, err := h.runs.InsertOne(context.Background(), bson.M{
		"run_id":     runID,
		"status":     StatusProcessing,
		"created_at": time.Now(),
	})
	if err != nil {
		fmt.Printf("Warning: failed to create run record: %v\n", err)
	}
}

func (h *History) FailRun(runID, errorMsg string) {
	h.updateRun(runID, bson.M{
		"status":        StatusFailed,
		"error_message": errorMsg,
	})
}

func (h *History) CompleteRun(runID, postID, videoPath, shareLink string) {
	now := time.Now()
	h.updateRun(runID, bson.M{
		"status":       StatusCompleted,
		"post_id":      postID,
		"video_path":   videoPath,
		"share_link":   shareLink,
		"completed_at": &now,
	})
}

func (h *History) updateRun(runID string, updateData bson.M) {
	_, err := h.runs.UpdateOne(
		context.Background(),
		bson.M{"run_id": runID},
		bson.M{"$set": updateData},
	)
	if err != nil {
		fmt.Printf("Warning: failed to update run %s: %v\n", runID, err)
	}
}
