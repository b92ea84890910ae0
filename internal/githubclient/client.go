package githubclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"skillsense/internal/config"
	"skillsense/internal/domain/github"
)

var ErrUserNotFound = errors.New("github user not found")

// RateLimitError carries the reset time surfaced from the upstream response
// headers. Unauthenticated calls are limited to 60 requests per hour.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "github rate limit exceeded"
	}
	return fmt.Sprintf("github rate limit exceeded, resets at %s", e.ResetAt.UTC().Format(time.RFC3339))
}

type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type repoWire struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Fork        bool     `json:"fork"`
}

// Profile is the fetched-and-cached view handed to the aggregation.
type Profile struct {
	User  User          `json:"user"`
	Repos []github.Repo `json:"repos"`
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Client struct {
	http     *http.Client
	apiBase  string
	token    string
	cache    Cache
	cacheTTL time.Duration
}

func New(cfg config.GitHubConfig, cache Cache) *Client {
	return &Client{
		http:     &http.Client{Timeout: 25 * time.Second},
		apiBase:  strings.TrimRight(cfg.APIBase, "/"),
		token:    cfg.Token,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
	}
}

func cacheKey(username string) string {
	return "github:user:" + strings.ToLower(strings.TrimSpace(username))
}

// FetchProfile returns the user plus public repositories with per-repo
// language byte counts. Responses are cached to stay inside the 60/h
// unauthenticated budget; a cache hit makes no upstream call.
func (c *Client) FetchProfile(ctx context.Context, username string) (Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Profile{}, ErrUserNotFound
	}

	if c.cache != nil {
		var cached Profile
		if ok, _ := c.cache.GetJSON(ctx, cacheKey(username), &cached); ok {
			return cached, nil
		}
	}

	var user User
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.apiBase, username), &user); err != nil {
		return Profile{}, err
	}

	var wires []repoWire
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.apiBase, username), &wires); err != nil {
		return Profile{}, err
	}

	repos := make([]github.Repo, 0, len(wires))
	for _, w := range wires {
		if w.Fork {
			continue
		}
		langs := make(map[string]int64)
		if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/languages", c.apiBase, w.FullName), &langs); err != nil {
			var rle *RateLimitError
			if errors.As(err, &rle) {
				return Profile{}, err
			}
			// One repo's language listing failing does not fail the profile.
			langs = nil
		}
		repos = append(repos, github.Repo{
			Name:        w.Name,
			Description: w.Description,
			Topics:      w.Topics,
			Stars:       w.Stars,
			Forks:       w.Forks,
			Languages:   langs,
		})
	}

	p := Profile{User: user, Repos: repos}
	if c.cache != nil {
		_ = c.cache.SetJSON(ctx, cacheKey(username), p, c.cacheTTL)
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "SkillSense/0.1")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining == "0" {
			return &RateLimitError{ResetAt: parseResetHeader(resp.Header.Get("X-RateLimit-Reset"))}
		}
		return fmt.Errorf("github responded %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("github responded %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func parseResetHeader(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
