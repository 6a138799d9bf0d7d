package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/config"
	"github.com/sandeepkv93/organizeme/internal/storage"
	"github.com/sandeepkv93/organizeme/internal/store"
	"github.com/sandeepkv93/organizeme/internal/suggest"
	"github.com/sandeepkv93/organizeme/internal/update"
)

func loadConfig(opts *rootOptions) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return config.FromEnv(cfg), nil
}

// newLogger writes to out, or to the configured log file when out is nil.
// The returned closer releases the file.
func newLogger(cfg config.Config, verbose bool, out io.Writer) (*log.Logger, func(), error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetLevel(cfg.Level())
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if out != nil {
		logger.SetOutput(out)
		return logger, func() {}, nil
	}
	if dir := filepath.Dir(cfg.LogPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() { _ = f.Close() }, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (*store.Store, func(), error) {
	db, err := storage.OpenSQLite(ctx, cfg.DBPath, cfg.StateTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if n, err := db.PurgeExpired(ctx); err != nil {
		logger.WithError(err).Warn("failed to purge expired state")
	} else if n > 0 {
		logger.WithField("rows", n).Debug("purged expired state")
	}
	st := store.Open(ctx, db, store.Options{Logger: logger})
	unsubscribe := st.Subscribe(func(s *store.State) {
		logger.WithFields(log.Fields{"tasks": len(s.Tasks), "categories": len(s.Categories)}).Debug("state changed")
	})
	return st, func() {
		unsubscribe()
		_ = st.Close()
		_ = db.Close()
	}, nil
}

// newUpstream picks the companion server when one is configured and the
// OpenAI-compatible API otherwise.
func newUpstream(cfg config.Config) suggest.Suggester {
	if cfg.Suggest.Endpoint != "" {
		return suggest.NewClient(cfg.Suggest.Endpoint, cfg.SuggestTimeout())
	}
	return suggest.NewOpenAIClient(cfg.Suggest.OpenAIEndpoint, cfg.Suggest.OpenAIKey, cfg.Suggest.Model, cfg.SuggestTimeout())
}

// newServerSuggester wraps the OpenAI client in the Redis cache when a Redis
// URL is configured.
func newServerSuggester(cfg config.Config, logger *log.Logger) (suggest.Suggester, func(), error) {
	upstream := suggest.NewOpenAIClient(cfg.Suggest.OpenAIEndpoint, cfg.Suggest.OpenAIKey, cfg.Suggest.Model, cfg.SuggestTimeout())
	if cfg.Server.RedisURL == "" {
		return upstream, func() {}, nil
	}
	redisOpts, err := redis.ParseURL(cfg.Server.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	rc := redis.NewClient(redisOpts)
	logger.WithField("addr", redisOpts.Addr).Info("caching suggestions in redis")
	return suggest.NewCache(upstream, rc, cfg.CacheTTL()), func() { _ = rc.Close() }, nil
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, opts.verbose, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	fetcher := suggest.NewFetcher(suggest.NewService(newUpstream(cfg), logger), suggest.FetcherOptions{
		Debounce: cfg.Debounce(),
		Timeout:  cfg.SuggestTimeout(),
	})
	defer fetcher.Close()

	logger.WithFields(log.Fields{"db": cfg.DBPath, "tasks": len(st.State().Tasks)}).Info("starting organizeme")
	program := tea.NewProgram(update.NewModel(ctx, st, update.Options{
		Fetcher: fetcher,
		Logger:  logger,
		Now:     time.Now,
	}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("organizeme failed: %w", err)
	}
	return nil
}
