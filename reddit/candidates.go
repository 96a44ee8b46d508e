package reddit

import (
	"math/rand"
	"strings"
)

// Filter decides whether a post is suitable narration material: a
// self-contained text body in the configured length band, with no links to
// chase and nothing NSFW or pinned.
type Filter struct {
	MinChars int
	MaxChars int
}

func (f Filter) Accept(p Post) bool {
	body := strings.TrimSpace(p.SelfText)
	if body == "" {
		return false
	}
	if p.Over18 || p.Stickied {
		return false
	}
	if strings.Contains(body, "http://") || strings.Contains(body, "https://") {
		return false
	}
	if len(body) < f.MinChars || len(body) > f.MaxChars {
		return false
	}
	return true
}

// CandidateQueue hands out acceptable posts one at a time, in a shuffled
// order, until the pool is exhausted. The caller keeps pulling until it finds
// a post it hasn't used before.
type CandidateQueue struct {
	pool []Post
	next int
}

// NewCandidateQueue filters the posts and shuffles the survivors with the
// supplied random source, so tests can pass a seeded one.
func NewCandidateQueue(posts []Post, filter Filter, rng *rand.Rand) *CandidateQueue {
	var pool []Post
	for _, p := range posts {
		if filter.Accept(p) {
			pool = append(pool, p)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return &CandidateQueue{pool: pool}
}

// Next returns the next candidate, or false when the pool is exhausted.
func (q *CandidateQueue) Next() (Post, bool) {
	if q.next >= len(q.pool) {
		return Post{}, false
	}
	p := q.pool[q.next]
	q.next++
	return p, true
}

// Remaining reports how many candidates have not been handed out yet.
func (q *CandidateQueue) Remaining() int {
	return len(q.pool) - q.next
}

// Reset restarts the queue from the beginning of the shuffled pool.
func (q *CandidateQueue) Reset() {
	q.next = 0
}
