package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/all_cards", r.URL.Path)
		io.WriteString(w, `{"data":[{"_id":"a1","name":"Jane","phone_numbers":["111","222"]}]}`)
	}))
	defer srv.Close()

	cards, err := NewClient(srv.URL).ListCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "a1", cards[0].ID)
	assert.Equal(t, []string{"111", "222"}, cards[0].PhoneNumbers)
}

func TestListCardsMissingDataIsEmptyListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	cards, err := NewClient(srv.URL).ListCards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListCardsStatusErrorKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "mongo down")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListCards(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Contains(t, se.Body, "mongo down")
}

func TestListCardsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL).ListCards(context.Background())
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se), "transport failure is not a status error")
	assert.Contains(t, err.Error(), "failed to reach backend")
}

func TestCreateCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/create_card", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jane", body["name"])
		assert.Equal(t, []any{"111"}, body["phone_numbers"])
		_, hasEmail := body["email"]
		assert.False(t, hasEmail, "dropped fields must not appear in the payload")

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"_id":"new1","name":"Jane","phone_numbers":["111"]}}`)
	}))
	defer srv.Close()

	card, err := NewClient(srv.URL).CreateCard(context.Background(), map[string]any{
		"name":          "Jane",
		"phone_numbers": []string{"111"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new1", card.ID)
}

func TestCreateCardMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateCard(context.Background(), map[string]any{"name": "x"})
	require.ErrorIs(t, err, ErrNoData)
}

func TestUploadCardSendsMultipartFileField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload_card", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "card.jpg", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-jpeg-bytes"), content)

		io.WriteString(w, `{"data":{"_id":"up1","name":"Scanned"}}`)
	}))
	defer srv.Close()

	card, err := NewClient(srv.URL).UploadCard(context.Background(), "card.jpg", []byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "up1", card.ID)
	assert.Equal(t, "Scanned", card.Name)
}

func TestUpdateCard(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/update_card/a1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateCard(context.Background(), "a1", map[string]any{
		"phone_numbers": []string{"555-1234"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"phone_numbers": []any{"555-1234"}}, got)
}

func TestUpdateCardFailureCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, "invalid phone number")
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateCard(context.Background(), "a1", map[string]any{"phone_numbers": []string{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phone number")
}
