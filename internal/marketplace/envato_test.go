package marketplace

import (
	"context"
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

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSearch(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/discovery/search/search/item", r.URL.Path)
		assert.Equal(t, "videohive.net", r.URL.Query().Get("site"))
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("term")
		io.WriteString(w, `{
			"matches": [
				{
					"id": 4002163,
					"name": "Clean Corporate Slideshow",
					"author_username": "motionmaker",
					"price_cents": 2900,
					"number_of_sales": 1351,
					"rating": {"rating": 4.7},
					"url": "https://videohive.net/item/clean-corporate-slideshow/4002163",
					"previews": {
						"icon_with_landscape_preview": {
							"landscape_url": "https://previews.example.com/4002163.png"
						}
					}
				}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", quietLogger())
	listings, err := client.Search(context.Background(), "corporate slideshow")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "corporate slideshow", gotQuery)
	require.Len(t, listings, 1)
	assert.Equal(t, models.Listing{
		ID:            "4002163",
		Name:          "Clean Corporate Slideshow",
		Author:        "motionmaker",
		ThumbnailURL:  "https://previews.example.com/4002163.png",
		PriceCents:    2900,
		NumberOfSales: 1351,
		Rating:        4.7,
		ListingURL:    "https://videohive.net/item/clean-corporate-slideshow/4002163",
	}, listings[0])
}

func TestSearchEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"matches":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", quietLogger())
	listings, err := client.Search(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestSearchRequiresToken(t *testing.T) {
	client := NewClient("http://localhost:0", "", quietLogger())
	_, err := client.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, models.ErrConfiguration))
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", quietLogger())
	_, err := client.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
	assert.Contains(t, err.Error(), "429")
}

func TestSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "token-123", quietLogger())
	_, err := client.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestImportListing(t *testing.T) {
	listing := models.Listing{
		ID:           "4002163",
		Name:         "Clean Corporate Slideshow",
		Author:       "motionmaker",
		ThumbnailURL: "https://previews.example.com/4002163.png",
	}

	tpl := ImportListing(listing)
	require.NoError(t, tpl.Validate())

	assert.Equal(t, "envato-4002163", tpl.ID)
	assert.Equal(t, "Clean Corporate Slideshow", tpl.Name)
	require.Len(t, tpl.Layers, 2)

	bg := tpl.Layers[0]
	assert.Equal(t, models.LayerImage, bg.Type)
	src, _ := bg.StringProperty("source")
	assert.Equal(t, listing.ThumbnailURL, src)

	title := tpl.Layers[1]
	assert.Equal(t, models.LayerText, title.Type)
	content, _ := title.StringProperty("content")
	assert.Equal(t, listing.Name, content)

	// Importing the same listing twice yields identical templates.
	assert.Equal(t, tpl, ImportListing(listing))
}
