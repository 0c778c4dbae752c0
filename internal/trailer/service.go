// Package trailer finds a trailer video id for a catalog item by searching
// an external video site.
package trailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/HerbHall/stinger/internal/metrics"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

var (
	// ErrUpstream is returned when the search site fails or answers with an
	// unexpected status.
	ErrUpstream = errors.New("trailer search failed")

	// ErrUnavailable is returned when a lookup is refused locally: the
	// circuit breaker is open or the rate limiter could not admit it.
	ErrUnavailable = errors.New("trailer search unavailable")
)

// maxPageBytes bounds how much of a search page is parsed.
const maxPageBytes = 4 << 20

var videoIDPattern = regexp.MustCompile(`"videoId"\s*:\s*"([^"]+)"`)

// ItemGetter resolves catalog items by id.
type ItemGetter interface {
	Get(id int) (*pkgcatalog.Item, error)
}

// Trailer is the lookup result. An empty VideoID means the search returned
// no recognizable video.
type Trailer struct {
	VideoID string `json:"videoId"`
}

// Options configures a Service.
type Options struct {
	SearchURL string
	Client    *http.Client

	// Rate is the sustained outbound request rate per second; Burst the
	// bucket size.
	Rate  float64
	Burst int

	CacheTTL time.Duration

	// FailureThreshold consecutive failures open the breaker for
	// BreakerTimeout.
	FailureThreshold uint32
	BreakerTimeout   time.Duration

	// Now is the cache clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SearchURL:        "https://www.youtube.com/results",
		Rate:             2,
		Burst:            4,
		CacheTTL:         6 * time.Hour,
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

type cacheEntry struct {
	trailer Trailer
	expires time.Time
}

// Service looks up trailers. It is safe for concurrent use.
type Service struct {
	items     ItemGetter
	searchURL *url.URL
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[string]
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger

	mu    sync.Mutex
	cache map[int]cacheEntry
}

// NewService creates a trailer lookup service over items.
func NewService(items ItemGetter, opts Options, logger *zap.Logger) (*Service, error) {
	u, err := url.Parse(opts.SearchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid trailer search url %q", opts.SearchURL)
	}

	def := DefaultOptions()
	if opts.Client == nil {
		opts.Client = NewHTTPClient(defaultClientTimeout, defaultRetries)
	}
	if opts.Rate <= 0 {
		opts.Rate = def.Rate
	}
	if opts.Burst <= 0 {
		opts.Burst = def.Burst
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = def.FailureThreshold
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = def.BreakerTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		items:     items,
		searchURL: u,
		client:    opts.Client,
		limiter:   rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst),
		ttl:       opts.CacheTTL,
		now:       opts.Now,
		logger:    logger,
		cache:     make(map[int]cacheEntry),
	}
	s.breaker = newBreaker("trailer_search", opts.FailureThreshold, opts.BreakerTimeout, logger)
	return s, nil
}

func newBreaker(name string, threshold uint32, timeout time.Duration, logger *zap.Logger) *gobreaker.CircuitBreaker[string] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller going away says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Lookup returns the trailer for the item with the given id. Unknown ids
// yield an error wrapping pkgcatalog.ErrItemNotFound.
func (s *Service) Lookup(ctx context.Context, id int) (Trailer, error) {
	item, err := s.items.Get(id)
	if err != nil {
		metrics.TrailerLookups.WithLabelValues("not_found").Inc()
		return Trailer{}, err
	}

	if t, ok := s.cached(id); ok {
		metrics.TrailerLookups.WithLabelValues("cache_hit").Inc()
		return t, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.TrailerLookups.WithLabelValues("rejected").Inc()
		return Trailer{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	query := SearchQuery(item)
	videoID, err := s.breaker.Execute(func() (string, error) {
		return s.fetch(ctx, query)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.TrailerLookups.WithLabelValues("rejected").Inc()
		return Trailer{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case err != nil && ctx.Err() != nil:
		metrics.TrailerLookups.WithLabelValues("rejected").Inc()
		return Trailer{}, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	case err != nil:
		metrics.TrailerLookups.WithLabelValues("error").Inc()
		s.logger.Warn("trailer search failed",
			zap.Int("id", id),
			zap.String("query", query),
			zap.Error(err),
		)
		if errors.Is(err, ErrUpstream) {
			return Trailer{}, err
		}
		return Trailer{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	t := Trailer{VideoID: videoID}
	if videoID == "" {
		metrics.TrailerLookups.WithLabelValues("empty").Inc()
	} else {
		metrics.TrailerLookups.WithLabelValues("found").Inc()
	}
	s.store(id, t)
	return t, nil
}

// SearchQuery builds the search text "<title> <year> trailer" for item,
// omitting an unknown year and collapsing whitespace.
func SearchQuery(item *pkgcatalog.Item) string {
	return strings.Join(strings.Fields(item.Title+" "+item.Year()+" trailer"), " ")
}

func (s *Service) fetch(ctx context.Context, query string) (string, error) {
	u := *s.searchURL
	q := u.Query()
	q.Set("search_query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return ExtractVideoID(io.LimitReader(resp.Body, maxPageBytes))
}

// ExtractVideoID returns the first video id on a search results page. It
// looks for a "videoId" field in inline scripts first and falls back to
// watch links. A page without either yields "".
func ExtractVideoID(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse search page: %w", err)
	}

	var id string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := videoIDPattern.FindStringSubmatch(sel.Text()); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	if id != "" {
		return id, nil
	}

	doc.Find(`a[href^="/watch?v="]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return true
		}
		if v := u.Query().Get("v"); v != "" {
			id = v
			return false
		}
		return true
	})
	return id, nil
}

func (s *Service) cached(id int) (Trailer, bool) {
	if s.ttl <= 0 {
		return Trailer{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[id]
	if !ok {
		return Trailer{}, false
	}
	if !s.now().Before(e.expires) {
		delete(s.cache, id)
		return Trailer{}, false
	}
	return e.trailer, true
}

func (s *Service) store(id int, t Trailer) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.cache[id] = cacheEntry{trailer: t, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
}
