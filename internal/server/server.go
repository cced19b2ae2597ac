// Package server publishes the calendar feed and a small JSON API over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/format"
	"github.com/tartampluch/go-luach/internal/hebcal"
	"golang.org/x/time/rate"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// Options configures a CalendarServer. Zero values fall back to the defaults.
type Options struct {
	BindAddr  string
	Port      string
	Israel    bool   // Default schedule of the JSON API
	Lang      string // Default language of the JSON API
	RateLimit float64
	RateBurst int
	Clock     hebcal.Clock

	// NewFormatter builds the labels of one API answer; format.New when nil.
	NewFormatter func(lang string) *format.Formatter

	// Registry receives the server metrics; a private registry is used when nil.
	Registry *prometheus.Registry
}

// CalendarServer serves the generated ICS file and the day API via HTTP.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads: the feed is read often and
	// replaced only when rebuilt.
	cache atomic.Pointer[cacheItem]

	opts     Options
	limiter  *rate.Limiter
	metrics  *Metrics
	registry *prometheus.Registry
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(opts Options) *CalendarServer {
	if opts.BindAddr == "" {
		opts.BindAddr = config.LocalhostBindAddr
	}
	if opts.Lang == "" {
		opts.Lang = config.DefaultLanguage
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = config.DefaultRateLimit
	}
	if opts.RateBurst < 1 {
		opts.RateBurst = config.DefaultRateBurst
	}
	if opts.Clock == nil {
		opts.Clock = hebcal.RealClock{}
	}
	if opts.NewFormatter == nil {
		opts.NewFormatter = format.New
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	return &CalendarServer{
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		metrics:  NewMetrics(opts.Registry),
		registry: opts.Registry,
	}
}

// Metrics exposes the collectors so that feed rebuilds can be recorded.
func (s *CalendarServer) Metrics() *Metrics {
	return s.metrics
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.opts.Port == "" {
		return errors.New(config.ErrPortRange)
	}

	srv := &http.Server{
		Addr:         s.opts.BindAddr + config.AddrSeparator + s.opts.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.opts.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served content.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	lastMod := time.Now().UTC().Format(http.TimeFormat)

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	}

	// Readers see either the old or the new complete item, never a partial state.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Load Data (Atomic / Lock-Free)
	item := s.cache.Load()

	// 3. Readiness Check
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	// 4. Set Response Headers
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// 5. Check Conditional Headers (Browser Caching)
	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				// If server content is not newer than client cache, return 304.
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	// 6. Serve Content
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
