package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/backend"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/grid"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

// ErrUnsupportedFile rejects uploads outside the image allow list.
var ErrUnsupportedFile = errors.New("unsupported file type: expected jpg, jpeg or png")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type CardService struct {
	client *backend.Client
}

func NewCardService(client *backend.Client) *CardService {
	return &CardService{client: client}
}

// Upload forwards one card image to the backend for OCR extraction and
// returns the record it created. Duplicate uploads create duplicate
// records; the backend has no idempotency key.
func (s *CardService) Upload(ctx context.Context, filename string, content []byte) (*models.Card, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFile
	}

	card, err := s.client.UploadCard(ctx, filename, content)
	if err != nil {
		log.Errorf("Error [backend.UploadCard] %s", err)
		return nil, err
	}
	return card, nil
}

// CreateManual stores a card from raw form fields. Empty fields are dropped
// and the comma separated list fields are split before transmission; no
// field is required, the backend is the authority on acceptance.
func (s *CardService) CreateManual(ctx context.Context, fields map[string]string) (*models.Card, error) {
	card, err := s.client.CreateCard(ctx, models.CleanPayload(fields))
	if err != nil {
		log.Errorf("Error [backend.CreateCard] %s", err)
		return nil, err
	}
	return card, nil
}

// Browse fetches the full card listing. On failure the caller gets the
// error plus an empty listing to render.
func (s *CardService) Browse(ctx context.Context) ([]models.Card, error) {
	cards, err := s.client.ListCards(ctx)
	if err != nil {
		log.Errorf("Error [backend.ListCards] %s", err)
		return []models.Card{}, err
	}
	return cards, nil
}

// RowFailure is one failed partial update, identifier plus backend message.
type RowFailure struct {
	ID  string
	Err error
}

// SaveResult aggregates a bulk save: rows updated, rows failed, per row
// failure detail.
type SaveResult struct {
	Updated  int
	Failed   int
	Failures []RowFailure
}

// ProgressFunc is called after each processed row during a bulk save.
type ProgressFunc func(done, total int, id string, err error)

// SaveChanges issues one partial update per change set, sequentially and in
// order. A failed row is recorded and does not block the remaining rows.
func (s *CardService) SaveChanges(ctx context.Context, changes []grid.ChangeSet, progress ProgressFunc) SaveResult {
	var res SaveResult

	for i, cs := range changes {
		err := s.client.UpdateCard(ctx, cs.ID, cs.Fields)
		if err != nil {
			log.Errorf("Error [backend.UpdateCard] failed to update %s: %s", cs.ID, err)
			res.Failed++
			res.Failures = append(res.Failures, RowFailure{ID: cs.ID, Err: err})
		} else {
			res.Updated++
		}

		if progress != nil {
			progress(i+1, len(changes), cs.ID, err)
		}
	}
	return res
}
