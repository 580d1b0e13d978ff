package limiter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/amonks/journey/logging"
	"golang.org/x/time/rate"
)

// New creates a Limiter that spaces requests at least delay apart, and that
// remembers server-imposed backoffs across process restarts in filename.
func New(filename string, delay time.Duration) *Limiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Limiter{
		filename: filename,
		pace:     rate.NewLimiter(limit, 1),
	}
}

type Limiter struct {
	mu       sync.Mutex
	filename string
	pace     *rate.Limiter
	nextAt   time.Time
}

// Load restores a backoff deadline saved by a previous process.
func (lim *Limiter) Load() error {
	bs, err := os.ReadFile(lim.filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error reading rate limit file '%s': %w", lim.filename, err)
	}

	nextAt, err := time.Parse(time.UnixDate, string(bs))
	if err != nil {
		return fmt.Errorf("error parsing rate limit file '%s': %w", lim.filename, err)
	}

	lim.mu.Lock()
	lim.nextAt = nextAt
	lim.mu.Unlock()

	return nil
}

// NextAt returns the current backoff deadline, which is zero if there isn't
// one.
func (lim *Limiter) NextAt() time.Time {
	lim.mu.Lock()
	defer lim.mu.Unlock()
	return lim.nextAt
}

// Wait blocks until any backoff deadline has passed and the pacing interval
// allows another request.
func (lim *Limiter) Wait(ctx context.Context) error {
	if nextAt := lim.NextAt(); !nextAt.IsZero() {
		dur := time.Until(nextAt)
		if dur > time.Second {
			logging.Info().
				Dur("wait", dur.Truncate(time.Second)).
				Str("until", nextAt.Format(time.StampMilli)).
				Msg("waiting for rate limit")
		}

		if dur > 0 {
			timer := time.NewTimer(dur)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lim.mu.Lock()
		lim.nextAt = time.Time{}
		lim.mu.Unlock()

		if err := os.Remove(lim.filename); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return lim.pace.Wait(ctx)
}

// SetNextAt records a Retry-After header value, in seconds. An empty header
// means a minute. One extra second is added as slack.
func (lim *Limiter) SetNextAt(retryAfter string) (time.Duration, error) {
	if retryAfter == "" {
		retryAfter = "60"
	}
	seconds, err := strconv.ParseInt(retryAfter, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing retry-after '%s': %w", retryAfter, err)
	}

	waitTime := time.Duration(seconds)*time.Second + time.Second
	nextAt := time.Now().Add(waitTime)

	lim.mu.Lock()
	lim.nextAt = nextAt
	lim.mu.Unlock()

	if err := os.WriteFile(lim.filename, []byte(nextAt.Format(time.UnixDate)), 0666); err != nil {
		return 0, fmt.Errorf("error writing rate limit file '%s': %w", lim.filename, err)
	}
	return waitTime, nil
}
