// Package remote reads timetables from the timetable management service over http.
// Failed lookups are reported as timetable.ErrStoreUnavailable and never retried here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	logginghelpers "github.com/Pjt727/odautofill/data/logging-helpers"
	"github.com/Pjt727/odautofill/timetable"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

type Store struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
}

type Option func(*Store)

// WithClient replaces the http client, the rate limiter is still installed on it
func WithClient(client *http.Client) Option {
	return func(s *Store) { s.client = client }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(baseURL string, limiter RateLimiter, opts ...Option) (*Store, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid timetable service url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid timetable service url %q", baseURL)
	}
	s := &Store{
		baseURL: u,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if limiter == nil {
		limiter = NewAdaptiveRateLimiter(rate.Limit(10), 5, rate.Limit(2))
	}
	addRateLimiter(s.client, limiter)
	return s, nil
}

func (s *Store) timetableURL(key string) string {
	return s.baseURL.JoinPath("timetables", key).String()
}

func (s *Store) Get(ctx context.Context, key timetable.Key) (timetable.Timetable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.timetableURL(key.String()), nil)
	if err != nil {
		return timetable.Timetable{}, fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	var tt timetable.Timetable
	status, err := s.do(req, &tt)
	if status == http.StatusNotFound {
		return timetable.Timetable{}, fmt.Errorf("%w: %s", timetable.ErrTimetableNotFound, key)
	}
	if err != nil {
		return timetable.Timetable{}, err
	}
	return tt, nil
}

func (s *Store) Save(ctx context.Context, tt timetable.Timetable) error {
	body, err := json.Marshal(tt)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.timetableURL(tt.Key.String()), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = s.do(req, nil)
	return err
}

func (s *Store) List(ctx context.Context) ([]timetable.Key, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL.JoinPath("timetables").String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	var keys []timetable.Key
	if _, err := s.do(req, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// do sends req and decodes a 2xx body into out. Every failure wraps ErrStoreUnavailable.
func (s *Store) do(req *http.Request, out any) (int, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()
	s.logger.Log(req.Context(), logginghelpers.LevelReportIO, "timetable service",
		"method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, fmt.Errorf("%w: %s returned %s", timetable.ErrStoreUnavailable, req.URL, resp.Status)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: could not decode %s: %w", timetable.ErrStoreUnavailable, req.URL, err)
	}
	return resp.StatusCode, nil
}
