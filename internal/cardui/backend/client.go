package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

// Per call class timeouts. Upload is long because the backend runs OCR on
// the image before it answers.
const (
	listTimeout   = 20 * time.Second
	createTimeout = 30 * time.Second
	updateTimeout = 30 * time.Second
	uploadTimeout = 120 * time.Second
)

// ErrNoData marks a success status whose body is missing the expected
// data payload.
var ErrNoData = errors.New("backend returned success but no data payload")

// StatusError is a non success HTTP status from the backend, body text kept
// for the user notice.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// Client talks to the card backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// ListCards fetches every stored card. A success body without a data
// payload is treated as an empty listing.
func (c *Client) ListCards(ctx context.Context) ([]models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/all_cards", nil)
	if err != nil {
		return nil, err
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if len(env.Data) == 0 {
		return []models.Card{}, nil
	}

	var cards []models.Card
	if err := json.Unmarshal(env.Data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode card listing: %w", err)
	}
	return cards, nil
}

// CreateCard stores a manually entered card. The payload holds only non
// empty fields, list fields already re-typed to string sequences.
func (c *Client) CreateCard(ctx context.Context, payload map[string]any) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create_card", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doCard(req)
}

// UploadCard sends an image for OCR extraction and returns the created card.
func (c *Client) UploadCard(ctx context.Context, filename string, content []byte) (*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_card", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.doCard(req)
}

// UpdateCard patches one card with only its changed fields.
func (c *Client) UpdateCard(ctx context.Context, id string, changes map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	body, err := json.Marshal(changes)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/update_card/"+id, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.statusError(resp)
	}
	return nil
}

func (c *Client) doCard(req *http.Request) (*models.Card, error) {
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, ErrNoData
	}

	var card models.Card
	if err := json.Unmarshal(env.Data, &card); err != nil {
		return nil, fmt.Errorf("failed to decode card payload: %w", err)
	}
	return &card, nil
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.statusError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode backend response: %w", err)
	}
	return &env, nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
