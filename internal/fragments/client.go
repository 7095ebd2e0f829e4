// Package fragments fetches product content fragments from the publish-side
// GraphQL persisted query endpoint.
package fragments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Persisted query path for the credit card fragment model. The fragment path
// is appended as a matrix parameter.
const persistedQueryPath = "/graphql/execute.json/jan-training/credit-card-by-path"

// Record is the structured content behind one fragment path. Every field is
// optional; absent fields stay empty.
type Record struct {
	Name        string
	Description string
	Promo       string
	Notes       string
	ImageURL    string
}

// FetchError reports a failed fragment fetch: a transport failure or a
// non-2xx response from the persisted query endpoint.
type FetchError struct {
	Path   string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fragments: fetch %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("fragments: fetch %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

var errEmptyPath = errors.New("empty fragment path")

// Config carries connection settings for the fragment endpoint.
type Config struct {
	// Endpoint is the publish host root, e.g. https://publish.example.com.
	Endpoint string
	// AuthToken, when set, is sent as a bearer token. This stands in for the
	// browser's credentialed request mode.
	AuthToken string
	// Timeout bounds each fetch; zero disables enforcement.
	Timeout time.Duration
}

// Client issues persisted query calls against the fragment endpoint.
type Client struct {
	endpoint  string
	authToken string
	http      *http.Client
	logger    *zap.Logger
}

// NewClient constructs a Client for the configured endpoint.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:  strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		authToken: strings.TrimSpace(cfg.AuthToken),
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// FetchRecord retrieves the content record behind a fragment path. A 2xx
// response that lacks the expected nested item yields (nil, nil): the
// fragment exists but carries no data, which is not an error.
func (c *Client) FetchRecord(ctx context.Context, path string) (*Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &FetchError{Path: path, Err: errEmptyPath}
	}

	endpoint := c.endpoint + persistedQueryPath + ";path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Path: path, Status: resp.StatusCode}
	}

	var payload struct {
		Data struct {
			CreditCardByPath struct {
				Item *rawRecord `json:"item"`
			} `json:"creditCardByPath"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// A 2xx with an unreadable body is treated the same as missing data.
		c.logger.Warn("fragment response malformed", zap.String("path", path), zap.Error(err))
		return nil, nil
	}

	item := payload.Data.CreditCardByPath.Item
	if item == nil {
		c.logger.Debug("fragment has no record", zap.String("path", path))
		return nil, nil
	}

	return &Record{
		Name:        item.CreditCardName,
		Description: item.CreditCardDescription.Plaintext,
		Promo:       item.Promo.Plaintext,
		Notes:       item.Notes.Plaintext,
		ImageURL:    item.CreditCardImage.AuthorURL,
	}, nil
}

type rawRecord struct {
	CreditCardName        string   `json:"creditCardName"`
	CreditCardDescription rawText  `json:"creditCardDescription"`
	Promo                 rawText  `json:"promo"`
	Notes                 rawText  `json:"notes"`
	CreditCardImage       rawImage `json:"creditCardImage"`
}

type rawText struct {
	Plaintext string `json:"plaintext"`
}

type rawImage struct {
	AuthorURL string `json:"_authorUrl"`
}
