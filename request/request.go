package request

import (
	"context"
	"fmt"
	"mime"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// FetchHTML does an HTTP GET on the given URL, then parses the response as
// HTML.
func FetchHTML(ctx context.Context, client *resty.Client, url string) (*goquery.Document, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching '%s': %w", url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err := Error(resp); err != nil {
		return nil, fmt.Errorf("unexpected status from '%s': %w", url, err)
	}

	contentType := resp.Header().Get("Content-type")
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "text/html" {
		return nil, fmt.Errorf("expected an html response at '%s', but got '%s'", url, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("error parsing html from '%s': %w", url, err)
	}

	return doc, nil
}

// Error checks the given response for an error code, and, if one is present,
// returns a friendly error including the body.
func Error(resp *resty.Response) error {
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		body := resp.Body()
		if len(body) > 512 {
			body = body[:512]
		}
		return fmt.Errorf("http status code %d: %s", code, string(body))
	}
	return nil
}
