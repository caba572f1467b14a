package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/mobility_map/internal/config"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) *Worker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "hook-secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWorker(nil, logger, cfg)
}

func testEvent(t *testing.T) (Event, string) {
	issue := &models.Issue{ID: "6", City: "Bangalore", Upvotes: 25}
	event := NewEvent(EventVoteCast, issue, "user-1")
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return event, string(payload)
}

func TestDeliver_SignsPayload(t *testing.T) {
	event, payload := testEvent(t)
	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).deliver(context.Background(), event, payload)

	require.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, Sign(payload, "hook-secret"), gotSignature)
}

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	event, payload := testEvent(t)
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).deliver(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_GivesUp(t *testing.T) {
	event, payload := testEvent(t)
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := newTestWorker(srv.URL).deliver(context.Background(), event, payload)

	assert.False(t, ok)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_NoURL(t *testing.T) {
	event, payload := testEvent(t)

	assert.False(t, newTestWorker("").deliver(context.Background(), event, payload))
}

type stubPublisher struct {
	got []Event
	err error
}

func (s *stubPublisher) Publish(_ context.Context, e Event) error {
	s.got = append(s.got, e)
	return s.err
}

func TestMultiPublisher(t *testing.T) {
	event, _ := testEvent(t)
	first := &stubPublisher{err: errors.New("redis down")}
	second := &stubPublisher{}

	err := MultiPublisher{first, second}.Publish(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.Len(t, first.got, 1)
	assert.Len(t, second.got, 1, "одна ошибка не останавливает рассылку")
}
