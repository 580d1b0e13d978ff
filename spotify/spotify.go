package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/amonks/journey/limiter"
	"github.com/amonks/journey/logging"
	"github.com/amonks/journey/readthrough"
	"github.com/amonks/journey/request"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrSpotify wraps every failed call: transport errors, non-2xx responses,
// undecodable bodies, and calls rejected while the circuit breaker is open.
var ErrSpotify = errors.New("spotify error")

// StatusError is a non-2xx response other than a 429.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return e.Err.Error() }
func (e *StatusError) Unwrap() error { return e.Err }

const (
	apiURL   = "https://api.spotify.com/v1"
	authURL  = "https://accounts.spotify.com/authorize"
	tokenURL = "https://accounts.spotify.com/api/token"

	// How many 429s a single call will wait out before giving up.
	maxRateLimitWaits = 3

	// Spotify's per-call limit for adding tracks to a playlist.
	MaxAppendBatch = 100
)

type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	RefreshToken string

	// Default market for top tracks and recommendations, like "US".
	Market string

	RequestDelay time.Duration
	Timeout      time.Duration

	// Idempotent catalog reads are cached here if set.
	CacheDir string

	RateLimitFile string

	// Overrides https://api.spotify.com/v1, for tests.
	BaseURL string
}

// New creates a Spotify client. With a refresh token, it acts as that user
// and refreshes access tokens as needed; without one, it uses client
// credentials, which can read the catalog but not create playlists.
func New(opts Options) (*Client, error) {
	var hc *http.Client
	if opts.RefreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Endpoint:     oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL},
			Scopes:       []string{"playlist-modify-private", "playlist-modify-public"},
		}
		hc = conf.Client(context.Background(), &oauth2.Token{RefreshToken: opts.RefreshToken})
	} else {
		conf := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     tokenURL,
		}
		hc = conf.Client(context.Background())
	}

	spo := NewWithHTTPClient(hc, opts)
	if err := spo.lim.Load(); err != nil {
		return nil, err
	}
	return spo, nil
}

// NewWithHTTPClient creates a client that sends every request through hc,
// which is expected to add authorization itself.
func NewWithHTTPClient(hc *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = apiURL
	}
	market := opts.Market
	if market == "" {
		market = "US"
	}
	rateLimitFile := opts.RateLimitFile
	if rateLimitFile == "" {
		rateLimitFile = "next-req"
	}

	api := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	web := resty.New()
	if opts.Timeout > 0 {
		api.SetTimeout(opts.Timeout)
		web.SetTimeout(opts.Timeout)
	}

	spo := &Client{
		api:    api,
		web:    web,
		lim:    limiter.New(rateLimitFile, opts.RequestDelay),
		market: market,
	}
	if opts.CacheDir != "" {
		spo.cache = readthrough.New(opts.CacheDir, "spotify-")
	}
	spo.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "spotify",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Only an unhealthy API trips the breaker: transport errors, 5xx,
		// and 429s that outlast maxRateLimitWaits. A 4xx is the caller's
		// problem.
		IsSuccessful: func(err error) bool {
			var status *StatusError
			switch {
			case err == nil, errors.Is(err, context.Canceled):
				return true
			case errors.As(err, &status):
				return status.Code < http.StatusInternalServerError
			default:
				return false
			}
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return spo
}

type Client struct {
	api, web *resty.Client

	lim   *limiter.Limiter
	cache *readthrough.ReadThrough
	cb    *gobreaker.CircuitBreaker[[]byte]

	market string
}

// Market returns the default market.
func (spo *Client) Market() string {
	return spo.market
}

// get fetches and decodes a catalog resource. Responses are cached when the
// client has a cache dir and cacheable is set.
func (spo *Client) get(ctx context.Context, path string, query url.Values, cacheable bool, into any) error {
	var key string
	if cacheable && spo.cache != nil {
		key = path + "?" + query.Encode()
		if bs, err := spo.cache.Get(key); err == nil {
			if err := json.Unmarshal(bs, into); err == nil {
				return nil
			}
		} else if !errors.Is(err, readthrough.ErrMiss) {
			logging.Warn().Err(err).Msg("cache read error")
		}
	}

	bs, err := spo.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, into); err != nil {
		return fmt.Errorf("%w: error decoding %s: %w", ErrSpotify, path, err)
	}

	if key != "" {
		if err := spo.cache.Set(key, bs); err != nil {
			logging.Warn().Err(err).Msg("cache write error")
		}
	}
	return nil
}

// post sends body as json and decodes the response into into, if into is
// not nil.
func (spo *Client) post(ctx context.Context, path string, body, into any) error {
	bs, err := spo.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	if into == nil {
		return nil
	}
	if err := json.Unmarshal(bs, into); err != nil {
		return fmt.Errorf("%w: error decoding %s: %w", ErrSpotify, path, err)
	}
	return nil
}

func (spo *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	bs, err := spo.cb.Execute(func() ([]byte, error) {
		return spo.send(ctx, method, path, query, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrSpotify, method, path, err)
	}
	return bs, err
}

func (spo *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	for waits := 0; ; waits++ {
		if err := spo.lim.Wait(ctx); err != nil {
			return nil, err
		}

		req := spo.api.R().SetContext(ctx)
		if query != nil {
			req.SetQueryParamsFromValues(query)
		}
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: request error: %w", ErrSpotify, err)
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			if waits >= maxRateLimitWaits {
				return nil, fmt.Errorf("%w: %s %s: still rate limited after %d waits", ErrSpotify, method, path, waits)
			}
			wait, err := spo.lim.SetNextAt(resp.Header().Get("Retry-After"))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSpotify, err)
			}
			logging.Warn().Str("path", path).Dur("retry_in", wait).Msg("429")
			continue
		}

		if err := request.Error(resp); err != nil {
			status := &StatusError{Code: resp.StatusCode(), Err: err}
			return nil, fmt.Errorf("%w: %s %s: %w", ErrSpotify, method, path, status)
		}

		return resp.Body(), nil
	}
}
