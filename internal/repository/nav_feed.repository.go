package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
)

var ErrEmptyUniverse = errors.New("nav feed contained no valid rows")

// APIError is returned for non-2xx responses from the feed
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("nav feed returned status %d: %s", e.StatusCode, body)
}

// the feed rejects clients that don't look like a browser
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8,*/*;q=0.7",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

const navDateLayout = "02-Jan-2006"

type NavFeedRepository interface {
	FetchUniverse(ctx context.Context) ([]domain.Instrument, error)
}

type navFeedRepositoryHandler struct {
	URL        string
	HttpClient *http.Client
	MaxTries   uint
	NewBackOff func() backoff.BackOff
}

type NavFeedOption func(*navFeedRepositoryHandler)

func WithNavFeedHTTPClient(client *http.Client) NavFeedOption {
	return func(h *navFeedRepositoryHandler) {
		h.HttpClient = client
	}
}

func WithNavFeedRetry(maxTries uint, newBackOff func() backoff.BackOff) NavFeedOption {
	return func(h *navFeedRepositoryHandler) {
		h.MaxTries = maxTries
		h.NewBackOff = newBackOff
	}
}

// ExponentialBackOff waits initial, then 2*initial, ... between attempts
func ExponentialBackOff(initial time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initial
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.MaxInterval = initial * 8
		b.Reset()
		return b
	}
}

func NewNavFeedRepository(url string, timeout time.Duration, opts ...NavFeedOption) NavFeedRepository {
	h := &navFeedRepositoryHandler{
		URL: url,
		HttpClient: &http.Client{
			Timeout: timeout,
		},
		MaxTries:   3,
		NewBackOff: ExponentialBackOff(2 * time.Second),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h navFeedRepositoryHandler) FetchUniverse(ctx context.Context) ([]domain.Instrument, error) {
	log := logger.FromContext(ctx)

	body, err := backoff.Retry(
		ctx,
		func() ([]byte, error) {
			return h.get(ctx)
		},
		backoff.WithBackOff(h.NewBackOff()),
		backoff.WithMaxTries(h.MaxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warnf("nav feed request failed, retrying in %s: %s", wait, err.Error())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nav feed after %d attempts: %w", h.MaxTries, err)
	}

	instruments, stats, err := ParseNavFeed(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nav feed: %w", err)
	}
	log.Infof("parsed nav feed: %d data rows, %d kept, %d bad nav, %d duplicate, %d malformed",
		stats.DataRows, stats.Kept, stats.InvalidNAV, stats.Duplicates, stats.Malformed)

	if len(instruments) == 0 {
		return nil, ErrEmptyUniverse
	}

	return instruments, nil
}

func (h navFeedRepositoryHandler) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := h.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

type NavFeedParseStats struct {
	DataRows   int
	Kept       int
	InvalidNAV int
	Duplicates int
	Malformed  int
}

// ParseNavFeed reads the semicolon-delimited NAV feed. Lines without a
// delimiter are section headers; the ones naming a fund house set the AMC
// for every row until the next one. Rows whose NAV isn't a number are
// dropped, as are repeated scheme codes
func ParseNavFeed(r io.Reader) ([]domain.Instrument, NavFeedParseStats, error) {
	stats := NavFeedParseStats{}
	out := []domain.Instrument{}
	seen := map[string]bool{}
	currentAMC := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.Contains(line, ";") {
			if strings.Contains(line, "Mutual Fund") {
				currentAMC = line
			}
			continue
		}

		parts := strings.Split(line, ";")
		if strings.TrimSpace(parts[0]) == "Scheme Code" {
			continue
		}
		stats.DataRows++
		if len(parts) < 6 {
			stats.Malformed++
			continue
		}

		code := strings.TrimSpace(parts[0])
		nav, err := decimal.NewFromString(strings.TrimSpace(parts[4]))
		if err != nil || nav.IsNegative() {
			stats.InvalidNAV++
			continue
		}
		if code == "" {
			stats.Malformed++
			continue
		}
		if seen[code] {
			stats.Duplicates++
			continue
		}
		seen[code] = true

		rawDate := strings.TrimSpace(parts[5])
		navDate, err := time.Parse(navDateLayout, rawDate)
		if err != nil {
			navDate = time.Time{}
		}

		out = append(out, domain.Instrument{
			SchemeCode: code,
			ISIN:       normalizeISIN(parts[1]),
			SchemeName: strings.TrimSpace(parts[3]),
			NAV:        nav,
			NAVDate:    navDate,
			NAVDateRaw: rawDate,
			AMC:        currentAMC,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}

	stats.Kept = len(out)
	return out, stats, nil
}

func normalizeISIN(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}
