package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const giphyBaseURL = "https://api.giphy.com"

// GiphyProvider searches the GIPHY v1 API.
type GiphyProvider struct {
	client *resty.Client
	apiKey string
}

func NewGiphyProvider(apiKey string, timeout time.Duration) *GiphyProvider {
	return &GiphyProvider{
		client: resty.New().SetBaseURL(giphyBaseURL).SetTimeout(timeout),
		apiKey: apiKey,
	}
}

func (p *GiphyProvider) WithBaseURL(baseURL string) *GiphyProvider {
	p.client.SetBaseURL(baseURL)
	return p
}

func (p *GiphyProvider) Name() string     { return "giphy" }
func (p *GiphyProvider) Configured() bool { return p.apiKey != "" }

type giphyImage struct {
	URL string `json:"url"`
	MP4 string `json:"mp4"`
}

type giphyResponse struct {
	Data []struct {
		ID     string                `json:"id"`
		Title  string                `json:"title"`
		Images map[string]giphyImage `json:"images"`
	} `json:"data"`
}

// giphyRatings maps content filter levels onto GIPHY ratings.
var giphyRatings = map[string]string{
	"off":    "r",
	"low":    "pg-13",
	"medium": "pg",
	"high":   "g",
}

func (p *GiphyProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("%w: GIPHY_API_KEY missing", ErrProviderUnavailable)
	}
	opts = opts.withDefaults()

	offset := opts.Offset
	if opts.Cursor != "" {
		if n, err := strconv.Atoi(opts.Cursor); err == nil {
			offset = n
		}
	}
	rating, ok := giphyRatings[opts.ContentFilter]
	if !ok {
		rating = giphyRatings[defaultContentFilter]
	}
	lang, _, _ := strings.Cut(opts.Locale, "_")

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": p.apiKey,
			"q":       query,
			"limit":   strconv.Itoa(opts.Limit),
			"offset":  strconv.Itoa(offset),
			"rating":  rating,
			"lang":    lang,
		}).
		Get("/v1/gifs/search")
	if err != nil {
		return nil, fmt.Errorf("%w: giphy: %v", ErrProviderUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, &UpstreamError{Provider: p.Name(), StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var data giphyResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode giphy response: %w", err)
	}

	results := make([]Result, 0, len(data.Data))
	for _, d := range data.Data {
		img := d.Images
		url := firstNonEmpty(img["original"].URL, img["downsized"].URL, img["original"].MP4, img["original_mp4"].MP4)
		if url == "" {
			continue
		}
		results = append(results, Result{
			ID:         d.ID,
			URL:        url,
			PreviewURL: firstNonEmpty(img["fixed_width_small"].URL, img["preview_gif"].URL, url),
			Title:      d.Title,
		})
	}
	return results, nil
}
