package fragments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordPayload = `{
  "data": {
    "creditCardByPath": {
      "item": {
        "creditCardName": "Everyday Card",
        "creditCardDescription": {"plaintext": "No annual fee.\nCashback on groceries."},
        "promo": {"plaintext": "0% intro APR"},
        "notes": {"plaintext": "Rates &amp; fees apply"},
        "creditCardImage": {"_authorUrl": "https://author.example.com/content/dam/cards/everyday.png"}
      }
    }
  }
}`

func TestFetchRecordSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recordPayload))
	}))
	defer ts.Close()

	client := NewClient(Config{Endpoint: ts.URL, AuthToken: "secret"}, nil)
	rec, err := client.FetchRecord(context.Background(), "/content/dam/cards/everyday")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Everyday Card", rec.Name)
	assert.Equal(t, "No annual fee.\nCashback on groceries.", rec.Description)
	assert.Equal(t, "0% intro APR", rec.Promo)
	assert.Equal(t, "Rates &amp; fees apply", rec.Notes)
	assert.Equal(t, "https://author.example.com/content/dam/cards/everyday.png", rec.ImageURL)

	assert.True(t, strings.HasPrefix(gotPath, persistedQueryPath+";path="), "unexpected request path %q", gotPath)
	assert.Contains(t, gotPath, "/content/dam/cards/everyday")
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestFetchRecordMissingItemIsNotAnError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	client := NewClient(Config{Endpoint: ts.URL}, nil)
	rec, err := client.FetchRecord(context.Background(), "/content/dam/cards/missing")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchRecordMalformedBodyIsNotAnError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client := NewClient(Config{Endpoint: ts.URL}, nil)
	rec, err := client.FetchRecord(context.Background(), "/content/dam/cards/broken")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchRecordHTTPStatusError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	client := NewClient(Config{Endpoint: ts.URL}, nil)
	rec, err := client.FetchRecord(context.Background(), "/content/dam/cards/gone")
	require.Error(t, err)
	assert.Nil(t, rec)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.Equal(t, "/content/dam/cards/gone", fetchErr.Path)
}

func TestFetchRecordTransportError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	client := NewClient(Config{Endpoint: ts.URL}, nil)
	_, err := client.FetchRecord(context.Background(), "/content/dam/cards/unreachable")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.Status)
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetchRecordEmptyPath(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{Endpoint: "https://publish.example.com"}, nil)
	_, err := client.FetchRecord(context.Background(), "  ")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, fetchErr.Unwrap(), errEmptyPath)
}
