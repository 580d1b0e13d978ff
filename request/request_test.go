package request_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amonks/journey/request"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(`<html><head><meta property="og:audio" content="https://p.scdn.co/mp3-preview/abc"></head></html>`))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := resty.New()

	doc, err := request.FetchHTML(context.Background(), client, srv.URL+"/page")
	require.NoError(t, err)
	content, ok := doc.Find(`meta[property="og:audio"]`).Attr("content")
	assert.True(t, ok)
	assert.Equal(t, "https://p.scdn.co/mp3-preview/abc", content)

	_, err = request.FetchHTML(context.Background(), client, srv.URL+"/json")
	assert.ErrorContains(t, err, "expected an html response")

	_, err = request.FetchHTML(context.Background(), client, srv.URL+"/missing")
	assert.ErrorContains(t, err, "http status code 404")
}
