package candidate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrNotFound means the directory has no candidate with the requested ID.
var ErrNotFound = errors.New("candidate not found")

const (
	defaultTimeout = 10 * time.Second
	minPageLimit   = 1
	maxPageLimit   = 100
	maxQueryLength = 100
)

// Client reads the upstream people directory. All operations are read-only,
// single-attempt, and context-aware; failures surface to the caller with no
// automatic retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Users []Candidate `json:"users"`
	Total int         `json:"total"`
}

type todosResponse struct {
	Todos []ScheduleItem `json:"todos"`
}

type postsResponse struct {
	Posts []FeedbackPost `json:"posts"`
}

// List fetches one page of candidates. Page is clamped to at least 1 and
// limit to [1,100] before hitting the wire.
func (c *Client) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < minPageLimit {
		limit = minPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	skip := (page - 1) * limit

	var resp listResponse
	path := fmt.Sprintf("/users?limit=%d&skip=%d", limit, skip)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return Page{}, fmt.Errorf("list candidates: %w", err)
	}

	for i := range resp.Users {
		enrich(&resp.Users[i])
	}

	return Page{
		Candidates: resp.Users,
		Total:      resp.Total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Get fetches a single candidate profile.
func (c *Client) Get(ctx context.Context, id int) (Candidate, error) {
	if id < 1 {
		return Candidate{}, ErrNotFound
	}

	var cand Candidate
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), &cand); err != nil {
		return Candidate{}, fmt.Errorf("get candidate %d: %w", id, err)
	}
	if cand.ID == 0 {
		return Candidate{}, ErrNotFound
	}

	enrich(&cand)
	return cand, nil
}

// Schedule fetches a candidate's interview schedule.
func (c *Client) Schedule(ctx context.Context, userID int) ([]ScheduleItem, error) {
	var resp todosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/todos/user/%d", userID), &resp); err != nil {
		return nil, fmt.Errorf("fetch schedule for candidate %d: %w", userID, err)
	}
	return resp.Todos, nil
}

// FeedbackPosts fetches a candidate's historical feedback entries.
func (c *Client) FeedbackPosts(ctx context.Context, userID int) ([]FeedbackPost, error) {
	var resp postsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/user/%d", userID), &resp); err != nil {
		return nil, fmt.Errorf("fetch feedback for candidate %d: %w", userID, err)
	}
	return resp.Posts, nil
}

// Search looks candidates up by free text. The query is sanitized and capped;
// an effectively empty query returns no results without a network call.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	q := sanitizeQuery(query)
	if q == "" {
		return nil, nil
	}

	var resp listResponse
	if err := c.getJSON(ctx, "/users/search?q="+url.QueryEscape(q), &resp); err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	for i := range resp.Users {
		enrich(&resp.Users[i])
	}
	return resp.Users, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory responded with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func sanitizeQuery(query string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\'', '"', '&':
			return -1
		}
		return r
	}, query)

	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > maxQueryLength {
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	return cleaned
}
