package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const tenorBaseURL = "https://tenor.googleapis.com"

// TenorProvider searches the Tenor v2 API.
type TenorProvider struct {
	client    *resty.Client
	apiKey    string
	clientKey string
}

func NewTenorProvider(apiKey, clientKey string, timeout time.Duration) *TenorProvider {
	return &TenorProvider{
		client:    resty.New().SetBaseURL(tenorBaseURL).SetTimeout(timeout),
		apiKey:    apiKey,
		clientKey: clientKey,
	}
}

// WithBaseURL points the client at another host (tests, proxies).
func (p *TenorProvider) WithBaseURL(baseURL string) *TenorProvider {
	p.client.SetBaseURL(baseURL)
	return p
}

func (p *TenorProvider) Name() string     { return "tenor" }
func (p *TenorProvider) Configured() bool { return p.apiKey != "" }

type tenorMedia struct {
	URL string `json:"url"`
}

type tenorResponse struct {
	Results []struct {
		ID                 string                `json:"id"`
		Title              string                `json:"title"`
		ContentDescription string                `json:"content_description"`
		MediaFormats       map[string]tenorMedia `json:"media_formats"`
	} `json:"results"`
	Next string `json:"next"`
}

func (p *TenorProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("%w: TENOR_API_KEY missing", ErrProviderUnavailable)
	}
	opts = opts.withDefaults()

	params := map[string]string{
		"q":             query,
		"key":           p.apiKey,
		"country":       opts.Country,
		"locale":        opts.Locale,
		"contentfilter": opts.ContentFilter,
		"media_filter":  "gif,tinygif,mp4,tinymp4,nanogif",
		"ar_range":      "all",
		"random":        strconv.FormatBool(opts.Random),
		"limit":         strconv.Itoa(opts.Limit),
	}
	if p.clientKey != "" {
		params["client_key"] = p.clientKey
	}
	if opts.Cursor != "" {
		params["pos"] = opts.Cursor
	} else if opts.Offset > 0 {
		params["pos"] = strconv.Itoa(opts.Offset)
	}

	resp, err := p.client.R().SetContext(ctx).SetQueryParams(params).Get("/v2/search")
	if err != nil {
		return nil, fmt.Errorf("%w: tenor: %v", ErrProviderUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, &UpstreamError{Provider: p.Name(), StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var data tenorResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode tenor response: %w", err)
	}

	results := make([]Result, 0, len(data.Results))
	for _, r := range data.Results {
		m := r.MediaFormats
		url := firstNonEmpty(m["gif"].URL, m["tinygif"].URL, m["mp4"].URL, m["tinymp4"].URL)
		if url == "" {
			continue
		}
		results = append(results, Result{
			ID:         r.ID,
			URL:        url,
			PreviewURL: firstNonEmpty(m["tinygif"].URL, m["nanogif"].URL, url),
			Title:      firstNonEmpty(r.Title, r.ContentDescription),
		})
	}
	return results, nil
}
