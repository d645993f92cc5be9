package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

const (
	kindUpload = "upload"
	kindManual = "manual"
)

type stashEntry struct {
	card    models.Card
	kind    string
	addedAt time.Time
}

// resultStash keeps just-created cards for the per record download links.
// Entries expire after the TTL; everything else in the app is stateless and
// re-fetched from the backend.
type resultStash struct {
	ttl     time.Duration
	entries sync.Map // token -> stashEntry
}

func newResultStash(ttl time.Duration) *resultStash {
	s := &resultStash{ttl: ttl}
	go s.janitor()
	return s
}

func (s *resultStash) Put(card models.Card, kind string) string {
	token := uuid.New().String()
	s.entries.Store(token, stashEntry{card: card, kind: kind, addedAt: time.Now()})
	return token
}

func (s *resultStash) Get(token string) (models.Card, string, bool) {
	v, ok := s.entries.Load(token)
	if !ok {
		return models.Card{}, "", false
	}
	e := v.(stashEntry)
	if time.Since(e.addedAt) > s.ttl {
		s.entries.Delete(token)
		return models.Card{}, "", false
	}
	return e.card, e.kind, true
}

func (s *resultStash) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.entries.Range(func(key, value any) bool {
			if time.Since(value.(stashEntry).addedAt) > s.ttl {
				s.entries.Delete(key)
			}
			return true
		})
	}
}
