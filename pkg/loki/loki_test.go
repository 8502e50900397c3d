package loki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "SomeUrl"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_FlushesFullBatch(t *testing.T) {

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxSize: 2,
		BatchMaxWait: time.Minute,
	}, &MockLogger{})
	assert.NoError(t, err)

	assert.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "first"}))
	assert.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "second"}))

	assert.Eventually(t, func() bool { return requests.Load() == 1 }, time.Second, 10*time.Millisecond)
	pusher.Stop()
}

func Test_Pusher_FlushesRemainderOnStop(t *testing.T) {

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxSize: 100,
		BatchMaxWait: time.Minute,
	}, &MockLogger{})
	assert.NoError(t, err)

	assert.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "pending"}))
	pusher.Stop()

	assert.EqualValues(t, 1, requests.Load())
}
