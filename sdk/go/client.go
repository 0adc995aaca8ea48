package overwhelmedsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Overwhelmed Tools HTTP API client.
type Client struct {
	BaseURL    string
	BasePath   string
	ActorID    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		BasePath: "/v0",
		Timeout:  10 * time.Second,
	}
}

// Profile is the input to roadmap generation.
type Profile struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Size     string   `json:"size"`
	Goals    []string `json:"goals"`
}

// Phase is one stage of a roadmap; Days reads like "4-7".
type Phase struct {
	Title string   `json:"title"`
	Days  string   `json:"days"`
	Tasks []string `json:"tasks"`
}

type Roadmap struct {
	Business string   `json:"business"`
	Industry string   `json:"industry"`
	Size     string   `json:"size"`
	Goals    []string `json:"goals"`
	Phases   []Phase  `json:"phases"`
}

// Task is a scheduled calendar task.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

// CalendarExport is a download ticket for an exported calendar.
type CalendarExport struct {
	Ticket    string `json:"ticket"`
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
	TaskCount int    `json:"task_count"`
}

// Event represents a log entry.
type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id"`
	Payload    string `json:"payload_json"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// GenerateRoadmap builds a roadmap and makes it the latest one.
func (c *Client) GenerateRoadmap(ctx context.Context, p Profile) (Roadmap, error) {
	var resp Roadmap
	err := c.do(ctx, http.MethodPost, "roadmaps", p, &resp)
	return resp, err
}

// LatestRoadmap returns the latest generated roadmap.
func (c *Client) LatestRoadmap(ctx context.Context) (Roadmap, error) {
	var resp Roadmap
	err := c.do(ctx, http.MethodGet, "roadmaps/latest", nil, &resp)
	return resp, err
}

// Tasks lists the task calendar in insertion order.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var resp []Task
	err := c.do(ctx, http.MethodGet, "tasks", nil, &resp)
	return resp, err
}

// AddTask adds a task by hand.
func (c *Client) AddTask(ctx context.Context, title, date, clock, category string) (Task, error) {
	body := map[string]any{
		"title":    title,
		"date":     date,
		"time":     clock,
		"category": category,
	}
	var resp Task
	err := c.do(ctx, http.MethodPost, "tasks", body, &resp)
	return resp, err
}

// DeleteTask removes a task; unknown ids succeed.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "tasks/"+url.PathEscape(id), nil, nil)
}

// ImportTasks appends the latest roadmap's tasks and returns the added ones.
func (c *Client) ImportTasks(ctx context.Context) ([]Task, error) {
	var resp struct {
		Added []Task `json:"added"`
	}
	err := c.do(ctx, http.MethodPost, "tasks/import", nil, &resp)
	return resp.Added, err
}

// ExportCalendar requests a download ticket for kind, e.g. "Apple Calendar".
func (c *Client) ExportCalendar(ctx context.Context, kind string) (CalendarExport, error) {
	var resp CalendarExport
	err := c.do(ctx, http.MethodPost, "calendar/exports", map[string]any{"kind": kind}, &resp)
	return resp, err
}

// DownloadCalendar fetches the iCalendar document behind a ticket.
func (c *Client) DownloadCalendar(ctx context.Context, ticket string) ([]byte, error) {
	var buf bytes.Buffer
	err := c.do(ctx, http.MethodGet, "calendar/exports/"+url.PathEscape(ticket), nil, &buf)
	return buf.Bytes(), err
}

// Events returns recent events.
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	endpoint := "events"
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	var resp struct {
		Items []Event `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.Items, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ActorID != "" {
		req.Header.Set("X-Actor-Id", c.ActorID)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var env struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	switch dst := out.(type) {
	case nil:
		return nil
	case io.Writer:
		_, err := io.Copy(dst, resp.Body)
		return err
	default:
		return json.NewDecoder(resp.Body).Decode(out)
	}
}

func (c *Client) base() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if p := strings.Trim(c.BasePath, "/"); p != "" {
		base += "/" + p
	}
	return base
}
