package reddit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const BaseURL = "https://www.reddit.com"

// Post is one self-post pulled from a subreddit listing.
type Post struct {
	ID        string
	Title     string
	SelfText  string
	Subreddit string
	Permalink string
	Ups       int
	Over18    bool
	Stickied  bool
}

type Client struct {
	UserAgent string
	HTTP      *http.Client
}

// NewClient creates a reddit client. Reddit rejects requests with the default
// Go user agent, so userAgent should identify the bot.
func NewClient(userAgent string) *Client {
	return &Client{
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// listing mirrors the parts of reddit's JSON envelope we care about.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				SelfText  string `json:"selftext"`
				Subreddit string `json:"subreddit"`
				Permalink string `json:"permalink"`
				Ups       int    `json:"ups"`
				Over18    bool   `json:"over_18"`
				Stickied  bool   `json:"stickied"`
				IsSelf    bool   `json:"is_self"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// TopPosts fetches today's top self-posts for a subreddit.
func (c *Client) TopPosts(subreddit string, limit int) ([]Post, error) {
	url := fmt.Sprintf("%s/r/%s/top.json?t=day&limit=%d", BaseURL, subreddit, limit)
	return c.fetchListing(url)
}

func (c *Client) fetchListing(url string) ([]Post, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching listing: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reddit API error (%d): %s", resp.StatusCode, string(body))
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("error decoding listing: %v", err)
	}

	var posts []Post
	for _, child := range l.Data.Children {
		d := child.Data
		if !d.IsSelf {
			continue
		}
		posts = append(posts, Post{
			ID:        d.ID,
			Title:     d.Title,
			SelfText:  d.SelfText,
			Subreddit: d.Subreddit,
			Permalink: d.Permalink,
			Ups:       d.Ups,
			Over18:    d.Over18,
			Stickied:  d.Stickied,
		})
	}

	return posts, nil
}
