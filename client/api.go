package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"quicknotes/dto"
	"quicknotes/model"
)

// APIError is returned for any non-2xx reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// API is the remote surface the Store drives. *Client implements it.
type API interface {
	Login(ctx context.Context, email, name string) (*model.User, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
	FetchNotes(ctx context.Context, query string, tags []string) ([]model.Note, error)
	CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error)
	UpdateNote(ctx context.Context, note model.Note) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Client talks to the notes HTTP API. The session cookie lives in the
// http.Client's jar.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

type noteUpdate struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (c *Client) Login(ctx context.Context, email, name string) (*model.User, error) {
	var out dto.AuthResponse
	status, err := c.do(ctx, http.MethodPost, "/api/auth", dto.AuthRequest{Email: email, Name: name}, &out)
	if err != nil {
		return nil, withFallback(err, "Login failed")
	}
	if status != http.StatusOK || out.User == nil {
		return nil, &APIError{Status: status, Message: "Login failed"}
	}
	return out.User, nil
}

// CurrentUser returns nil without error when there is no session.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out dto.AuthResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/auth", nil, &out); err != nil {
		return nil, replaceMessage(err, "Failed to get current user")
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/auth", nil, nil); err != nil {
		return replaceMessage(err, "Logout failed")
	}
	return nil
}

func (c *Client) FetchNotes(ctx context.Context, query string, tags []string) ([]model.Note, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if len(tags) > 0 {
		params.Set("tags", strings.Join(tags, ","))
	}
	path := "/api/notes"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	notes := make([]model.Note, 0)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, replaceMessage(err, "Failed to fetch notes")
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	var note model.Note
	if _, err := c.do(ctx, http.MethodPost, "/api/notes", req, &note); err != nil {
		return nil, replaceMessage(err, "Failed to create note")
	}
	return &note, nil
}

// UpdateNote sends the full editable state of note.
func (c *Client) UpdateNote(ctx context.Context, note model.Note) (*model.Note, error) {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	body := noteUpdate{ID: note.ID, Title: note.Title, Content: note.Content, Tags: tags}

	var updated model.Note
	if _, err := c.do(ctx, http.MethodPatch, "/api/notes", body, &updated); err != nil {
		return nil, replaceMessage(err, "Failed to update note")
	}
	return &updated, nil
}

// DeleteNote treats 404 as success: the note is already gone.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("note ID is required for deletion")
	}
	_, err := c.do(ctx, http.MethodDelete, "/api/notes", dto.DeleteNoteRequest{ID: id}, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return replaceMessage(err, "Failed to delete note")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &errBody)
		return resp.StatusCode, &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// withFallback keeps the server message and fills in fallback when it is empty.
func withFallback(err error, fallback string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return &APIError{Status: apiErr.Status, Message: fallback}
		}
		return apiErr
	}
	return fmt.Errorf("%s: %w", fallback, err)
}

// replaceMessage gives API errors a fixed user-facing message.
func replaceMessage(err error, message string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{Status: apiErr.Status, Message: message}
	}
	return fmt.Errorf("%s: %w", message, err)
}
