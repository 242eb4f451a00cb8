package readiness

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
)

// Probe polls the dependency at a fixed cadence until a connectivity
// check succeeds or the wait budget is exhausted. Individual attempt
// failures are absorbed; only budget exhaustion (or cancellation) is
// surfaced to the caller.
type Probe struct {
	Target   launch.Dependency
	Interval time.Duration
	Budget   time.Duration

	// AttemptTimeout bounds a single connection attempt. Defaults to
	// the probe interval.
	AttemptTimeout time.Duration
}

func (w Probe) Wait(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.Budget)
	defer cancel()

	attemptTimeout := w.AttemptTimeout
	if attemptTimeout <= 0 {
		attemptTimeout = w.Interval
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	attempts := 0
	for {
		attempts++
		var err error
		switch w.Target.Scheme {
		case "http":
			err = probeHTTP(ctx, w.Target.ProbeURL(), attemptTimeout)
		default:
			err = probeTCP(ctx, w.Target.Address(), attemptTimeout)
		}
		if err == nil {
			log.Info().
				Str("dependency", w.Target.Name).
				Int("attempts", attempts).
				Msg("dependency ready")
			return nil
		}
		log.Debug().
			Str("dependency", w.Target.Name).
			Err(err).
			Msg("probe failed; retrying")

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "waiting for %s", w.Target.Name)
		case <-t.C:
		}
	}
}

func probeTCP(ctx context.Context, address string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

func probeHTTP(ctx context.Context, url string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return errors.Errorf("dependency returned status %d", resp.StatusCode)
	}
	return nil
}
