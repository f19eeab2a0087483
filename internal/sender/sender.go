// Package sender uploads detection reports to a collection endpoint.
package sender

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/nhdewitt/diskdetect/internal/report"
)

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

func (rc RetryConfig) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return rc.InitialDelay
	}

	delay := float64(rc.InitialDelay)
	for range attempt {
		delay *= rc.Multiplier
	}

	if time.Duration(delay) > rc.MaxDelay {
		return rc.MaxDelay
	}
	return time.Duration(delay)
}

// Sender posts gzip-compressed JSON reports.
type Sender struct {
	Endpoint string
	Client   *http.Client
	Retry    RetryConfig
}

func New(endpoint string) *Sender {
	return &Sender{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 45 * time.Second},
		Retry:    DefaultRetryConfig(),
	}
}

// Send uploads r, retrying network errors and 5xx responses.
func (s *Sender) Send(ctx context.Context, r report.Report) error {
	payload, err := compress(r)
	if err != nil {
		return err
	}

	target, err := s.url(r.Hostname)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := range max(s.Retry.MaxAttempts, 1) {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.Retry.Delay(attempt - 1)):
			}
		}

		retry, err := s.post(ctx, target, payload)
		if err == nil {
			logger.WithField("id", r.ID).Infof("sent report of %d drives", len(r.Drives))
			return nil
		}
		lastErr = err
		if !retry {
			break
		}
		logger.WithField("attempt", attempt+1).Warnf("report upload failed: %v", err)
	}

	return fmt.Errorf("send report: %w", lastErr)
}

func (s *Sender) url(hostname string) (string, error) {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid endpoint %q: scheme must be http or https", s.Endpoint)
	}
	q := u.Query()
	q.Set("hostname", hostname)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// post reports whether a failure is worth retrying.
func (s *Sender) post(ctx context.Context, target string, payload []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("User-Agent", "diskdetect/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return ctx.Err() == nil, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode >= 500, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return false, nil
}

func compress(r report.Report) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	if err := json.NewEncoder(gz).Encode(r); err != nil {
		return nil, fmt.Errorf("json encode error: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("gzip close error: %w", err)
	}
	return buf.Bytes(), nil
}
