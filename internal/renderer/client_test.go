package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocanvas/api-gateway/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestClientSubmit(t *testing.T) {
	var gotAuth string
	var gotBody Edit
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/render", r.URL.Path)
		gotAuth = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"ext-42","status":"queued","message":"Created"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	edit := BuildEdit(models.Template{ID: "t1", Name: "T", Layers: []models.Layer{
		textLayer("l1", "Hello", nil),
	}})

	resp, err := client.Submit(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, "ext-42", resp.ID)
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, "secret", gotAuth)
	assert.Equal(t, "Hello", gotBody.Timeline.Tracks[0].Clips[0].Asset.Text)
}

func TestClientSubmitRejectsMissingJobID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"queued"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	_, err := client.Submit(context.Background(), Edit{})
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestClientRequiresAPIKey(t *testing.T) {
	client := NewClient("http://localhost:0", "", testLogger())

	_, err := client.Submit(context.Background(), Edit{})
	assert.True(t, errors.Is(err, models.ErrConfiguration))

	_, err = client.GetStatus(context.Background(), "ext-1")
	assert.True(t, errors.Is(err, models.ErrConfiguration))
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	_, err := client.Submit(context.Background(), Edit{})
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
	assert.Contains(t, err.Error(), "500")
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	_, err := client.GetStatus(context.Background(), "ext-1")
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestClientGetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/render/ext-42", r.URL.Path)
		io.WriteString(w, `{"status":"rendering","progress":0.42}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	status, err := client.GetStatus(context.Background(), "ext-42")
	require.NoError(t, err)
	assert.Equal(t, "rendering", status.Status)
	assert.Equal(t, 0.42, status.Progress)
	assert.Empty(t, status.URL)
}

func TestClientGetStatusDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"done","progress":1,"url":"https://cdn.example.com/out.mp4"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger())
	status, err := client.GetStatus(context.Background(), "ext-42")
	require.NoError(t, err)
	assert.Equal(t, "done", status.Status)
	assert.Equal(t, "https://cdn.example.com/out.mp4", status.URL)
}
