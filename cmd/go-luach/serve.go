package main

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/hebcal"
	"github.com/tartampluch/go-luach/internal/server"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logStartupInfo()
			err := c.serve(cmd.Context())
			if err == nil {
				slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			}
			return err
		},
	}

	cmd.Flags().Int(config.FlagPort, config.DefaultPort, config.FlagDescPort)

	return cmd
}

// serve runs the HTTP server, the refresh worker and the source watcher until ctx ends.
func (c *cli) serve(ctx context.Context) error {
	s := c.settings

	srv := server.NewCalendarServer(server.Options{
		BindAddr:     s.Server.BindAddr,
		Port:         strconv.Itoa(s.Server.Port),
		Israel:       s.Israel,
		Lang:         s.Lang,
		RateLimit:    s.Server.RateLimit,
		RateBurst:    s.Server.RateBurst,
		Clock:        c.clock,
		NewFormatter: c.formatter,
	})

	worker := &feedWorker{
		gen:      c.generator(),
		clock:    c.clock,
		srv:      srv,
		metrics:  srv.Metrics(),
		feed:     s.Feed,
		israel:   s.Israel,
		sync:     c.syncConfig(),
		interval: time.Duration(s.Server.RefreshMin) * time.Minute,
		trigger:  make(chan struct{}, config.ChannelBufferSize),
	}

	if paths := c.watchedPaths(); len(paths) > 0 {
		watcher, err := newSourceWatcher(paths, worker.trigger)
		if err != nil {
			slog.Warn(config.ErrWatcher,
				config.LogKeyComponent, config.CompWatcher,
				config.LogKeyError, err,
			)
		} else {
			defer func() { _ = watcher.close() }()
			go watcher.run(ctx)
		}
	}

	go worker.run(ctx)

	return srv.Start(ctx)
}

// watchedPaths lists the local source files whose changes trigger a rebuild.
func (c *cli) watchedPaths() []string {
	var paths []string
	if c.settings.Source.Mode == config.SourceModeLocal && c.settings.Source.Path != "" {
		paths = append(paths, c.settings.Source.Path)
	}
	if c.settings.Anniversaries != "" {
		paths = append(paths, c.settings.Anniversaries)
	}
	return paths
}

// feedPublisher receives rebuilt feeds.
type feedPublisher interface {
	Update(data []byte)
}

// feedWorker rebuilds the served feed on a schedule and on demand.
type feedWorker struct {
	gen      *engine.Generator
	clock    hebcal.Clock
	srv      feedPublisher
	metrics  *server.Metrics
	feed     config.FeedSettings
	israel   bool
	sync     *engine.SyncConfig
	interval time.Duration

	// trigger requests an immediate rebuild. Sends never block: one pending
	// request covers any number of changes.
	trigger chan struct{}
}

// run manages the periodic rebuild schedule.
func (w *feedWorker) run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	w.rebuild(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-w.trigger:
			w.rebuild(ctx)

		case <-ticker.C:
			w.rebuild(ctx)
		}
	}
}

// rebuild renders the window of PastDays before today to FutureDays after it and
// publishes it. A failed build keeps the previous feed.
func (w *feedWorker) rebuild(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	today, err := hebcal.Now(w.clock)
	if err != nil {
		log.Error(config.MsgSyncFailed, config.LogKeyError, err)
		return
	}

	began := time.Now()
	data, events, err := w.gen.BuildFeed(ctx, engine.FeedConfig{
		Start:      today.AddDays(-w.feed.PastDays),
		Days:       w.feed.PastDays + w.feed.FutureDays,
		Israel:     w.israel,
		Categories: engine.CategoriesFrom(w.feed),
		Sync:       w.sync,
	})
	elapsed := time.Since(began)
	if w.metrics != nil {
		w.metrics.ObserveRebuild(elapsed, events, err)
	}
	if err != nil {
		log.Error(config.MsgSyncFailed, config.LogKeyError, err)
		return
	}

	w.srv.Update(data)
	log.Info(config.MsgSyncFinished,
		config.LogKeyEvents, events,
		config.LogKeyDuration, elapsed.Milliseconds(),
	)
}
