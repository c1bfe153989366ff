// Package marketplace proxies the stock-template marketplace: search against
// the Envato discovery API and conversion of a selected listing into an
// editable template.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/models"
)

const searchSite = "videohive.net"

// Client talks to the marketplace API. A missing token is a configuration
// error, distinct from a failed request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a marketplace client.
func NewClient(baseURL, token string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// searchResponse mirrors the discovery API's search envelope.
type searchResponse struct {
	Matches []struct {
		ID            json.Number `json:"id"`
		Name          string      `json:"name"`
		AuthorUser    string      `json:"author_username"`
		PriceCents    int         `json:"price_cents"`
		NumberOfSales int         `json:"number_of_sales"`
		Rating        struct {
			Rating float64 `json:"rating"`
		} `json:"rating"`
		URL      string `json:"url"`
		Previews struct {
			IconWithLandscapePreview struct {
				LandscapeURL string `json:"landscape_url"`
			} `json:"icon_with_landscape_preview"`
		} `json:"previews"`
	} `json:"matches"`
}

// Search queries the marketplace for stock templates. An empty result is a
// valid response, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]models.Listing, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: marketplace token is not configured", models.ErrConfiguration)
	}

	endpoint := fmt.Sprintf("%s/v1/discovery/search/search/item?site=%s&term=%s",
		c.baseURL, searchSite, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marketplace request failed: %v", models.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"query":       query,
		}).Warn("Marketplace search returned an error")
		return nil, fmt.Errorf("%w: marketplace returned %d: %s", models.ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode marketplace response: %v", models.ErrServiceUnavailable, err)
	}

	listings := make([]models.Listing, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		listings = append(listings, models.Listing{
			ID:            m.ID.String(),
			Name:          m.Name,
			Author:        m.AuthorUser,
			ThumbnailURL:  m.Previews.IconWithLandscapePreview.LandscapeURL,
			PriceCents:    m.PriceCents,
			NumberOfSales: m.NumberOfSales,
			Rating:        m.Rating.Rating,
			ListingURL:    m.URL,
		})
	}
	return listings, nil
}

// ImportListing synthesizes an editable template from a selected listing: a
// centered title layer over the listing's preview image. Deterministic; the
// result always validates.
func ImportListing(l models.Listing) models.Template {
	return models.Template{
		ID:            "envato-" + l.ID,
		Name:          l.Name,
		ThumbnailURL:  l.ThumbnailURL,
		ThumbnailHint: "stock template",
		Layers: []models.Layer{
			{
				ID:   "envato-" + l.ID + "-background",
				Name: "Preview Background",
				Type: models.LayerImage,
				Properties: map[string]models.Property{
					"source":  {Value: models.StringValue(l.ThumbnailURL), Kind: models.KindFile, Label: "Source"},
					"opacity": {Value: models.NumberValue(100), Kind: models.KindSlider, Label: "Opacity", Options: &models.PropertyOptions{Min: floatPtr(0), Max: floatPtr(100)}},
				},
			},
			{
				ID:   "envato-" + l.ID + "-title",
				Name: "Title",
				Type: models.LayerText,
				Properties: map[string]models.Property{
					"content":  {Value: models.StringValue(l.Name), Kind: models.KindText, Label: "Content"},
					"fontSize": {Value: models.NumberValue(48), Kind: models.KindSlider, Label: "Font Size", Options: &models.PropertyOptions{Min: floatPtr(8), Max: floatPtr(128)}},
					"color":    {Value: models.StringValue("#ffffff"), Kind: models.KindColor, Label: "Color"},
					"x":        {Value: models.NumberValue(50), Kind: models.KindSlider, Label: "Position X (%)", Options: &models.PropertyOptions{Min: floatPtr(0), Max: floatPtr(100)}},
					"y":        {Value: models.NumberValue(50), Kind: models.KindSlider, Label: "Position Y (%)", Options: &models.PropertyOptions{Min: floatPtr(0), Max: floatPtr(100)}},
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 { return &f }
