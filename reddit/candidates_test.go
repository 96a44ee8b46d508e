package reddit

import (
	"math/rand"
	"strings"
	"testing"
)

func TestFilterAccept(t *testing.T) {
	filter := Filter{MinChars: 20, MaxChars: 200}

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"good post", Post{SelfText: "A perfectly ordinary story about something that happened."}, true},
		{"empty body", Post{SelfText: ""}, false},
		{"whitespace body", Post{SelfText: "   \n  "}, false},
		{"contains link", Post{SelfText: "Check this out https://example.com it is great honestly"}, false},
		{"contains http link", Post{SelfText: "See http://example.com for the details of the story"}, false},
		{"too short", Post{SelfText: "tiny"}, false},
		{"too long", Post{SelfText: strings.Repeat("long ", 100)}, false},
		{"nsfw", Post{SelfText: "A perfectly ordinary story otherwise fine here.", Over18: true}, false},
		{"stickied", Post{SelfText: "A perfectly ordinary story otherwise fine here.", Stickied: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Accept(tt.post); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidateQueue(t *testing.T) {
	posts := []Post{
		{ID: "a", SelfText: "A story long enough to pass the filter comfortably."},
		{ID: "b", SelfText: "no"},
		{ID: "c", SelfText: "Another story long enough to pass the filter comfortably."},
		{ID: "d", SelfText: "Yet another story long enough to pass the filter comfortably."},
	}
	filter := Filter{MinChars: 20, MaxChars: 500}

	queue := NewCandidateQueue(posts, filter, rand.New(rand.NewSource(42)))
	if queue.Remaining() != 3 {
		t.Fatalf("expected 3 candidates after filtering, got %d", queue.Remaining())
	}

	seen := map[string]bool{}
	for {
		p, ok := queue.Next()
		if !ok {
			break
		}
		if p.ID == "b" {
			t.Errorf("filtered post %q should never be handed out", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("post %q handed out twice", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct candidates, got %d", len(seen))
	}
	if _, ok := queue.Next(); ok {
		t.Error("exhausted queue should keep returning false")
	}

	queue.Reset()
	if queue.Remaining() != 3 {
		t.Errorf("reset queue should be full again, got %d remaining", queue.Remaining())
	}
}

func TestCandidateQueueDeterministicShuffle(t *testing.T) {
	posts := []Post{
		{ID: "a", SelfText: "A story long enough to pass the filter comfortably."},
		{ID: "b", SelfText: "Another story long enough to pass the filter comfortably."},
		{ID: "c", SelfText: "Yet another story long enough to pass the filter comfortably."},
	}
	filter := Filter{MinChars: 20, MaxChars: 500}

	order := func(seed int64) []string {
		queue := NewCandidateQueue(posts, filter, rand.New(rand.NewSource(seed)))
		var ids []string
		for {
			p, ok := queue.Next()
			if !ok {
				return ids
			}
			ids = append(ids, p.ID)
		}
	}

	first := order(7)
	second := order(7)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", first, second)
		}
	}
}
