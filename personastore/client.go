// Package personastore is the HTTP client for the CoRDial backend REST API: persona CRUD,
// the default persona pointer, and the conversation endpoint.
package personastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cordial-cms/cordial-cms/models"
)

// ErrOperationFailed is returned for any transport error or non-2xx response. Error
// bodies are not parsed.
var ErrOperationFailed = errors.New("personastore: operation failed")

// Store is the persona side of the backend
type Store interface {
	ListPersonas(ctx context.Context) ([]models.Persona, error)
	CurrentPersona(ctx context.Context) (*models.Persona, error)
	AddPersona(ctx context.Context, fields models.PersonaFields) (*models.Persona, error)
	EditPersona(ctx context.Context, id string, fields models.PersonaFields) (*models.Persona, error)
	MakePersonaDefault(ctx context.Context, id string) error
}

// Conversation is the chat side of the backend
type Conversation interface {
	Converse(ctx context.Context, prompt string) (*models.ConversationResponse, error)
}

// Client talks to the backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, e.g. http://127.0.0.1:5000/api. A zero timeout
// leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListPersonas fetches every persona
func (c *Client) ListPersonas(ctx context.Context) ([]models.Persona, error) {
	var personas []models.Persona
	if err := c.do(ctx, http.MethodGet, "/view_personas", nil, &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

// CurrentPersona fetches the default persona. It returns nil when none is set.
func (c *Client) CurrentPersona(ctx context.Context) (*models.Persona, error) {
	var persona *models.Persona
	if err := c.do(ctx, http.MethodGet, "/get_current_persona", nil, &persona); err != nil {
		return nil, err
	}
	if persona == nil || persona.ID == "" {
		return nil, nil
	}
	return persona, nil
}

// AddPersona creates a persona. The backend assigns the id.
func (c *Client) AddPersona(ctx context.Context, fields models.PersonaFields) (*models.Persona, error) {
	persona := models.Persona{}.WithFields(fields)
	if err := c.do(ctx, http.MethodPost, "/add_persona", fields, &persona); err != nil {
		return nil, err
	}
	return &persona, nil
}

// EditPersona replaces the four mutable fields of a persona. Fields missing from the
// response keep the submitted values.
func (c *Client) EditPersona(ctx context.Context, id string, fields models.PersonaFields) (*models.Persona, error) {
	persona := models.Persona{ID: id}.WithFields(fields)
	req := models.EditPersonaRequest{ID: id, PersonaFields: fields}
	if err := c.do(ctx, http.MethodPost, "/edit_persona", req, &persona); err != nil {
		return nil, err
	}
	return &persona, nil
}

// MakePersonaDefault moves the default pointer. Only the status code is checked.
func (c *Client) MakePersonaDefault(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/make_persona_default", models.DefaultPersonaRequest{PersonaID: id}, nil)
}

// Converse sends one chat turn
func (c *Client) Converse(ctx context.Context, prompt string) (*models.ConversationResponse, error) {
	req := models.ConversationRequest{Prompt: prompt, ChatSource: models.ChatSourceWebChat}
	var resp models.ConversationResponse
	if err := c.do(ctx, http.MethodPost, "/conversation", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks that the backend answers
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/get_current_persona", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", ErrOperationFailed, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrOperationFailed, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrOperationFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: status %d", ErrOperationFailed, method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s: %v", ErrOperationFailed, path, err)
	}
	return nil
}
