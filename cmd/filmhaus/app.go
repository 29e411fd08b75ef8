package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okvist/filmhaus/internal/config"
	"github.com/okvist/filmhaus/internal/events"
	"github.com/okvist/filmhaus/internal/identity"
	"github.com/okvist/filmhaus/internal/library"
	"github.com/okvist/filmhaus/internal/migrations"
	"github.com/okvist/filmhaus/internal/probe"
	"github.com/okvist/filmhaus/internal/scan"
	"github.com/okvist/filmhaus/internal/subtitles"
	"github.com/okvist/filmhaus/internal/sync"
	"github.com/okvist/filmhaus/internal/tmdb"
	"github.com/okvist/filmhaus/internal/transcode"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app holds everything a command needs after wiring.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *sql.DB
	bus      *events.Bus
	eventLog *events.EventLog
	orch     *sync.Orchestrator
	jobs     *sync.Registry
}

// buildApp loads the config, opens the database, and wires the sync
// pipeline. Enrichment is only wired when enabled in the config.
func buildApp() (*app, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	if issues := cfg.Validate(); len(issues) > 0 {
		fatal := false
		for _, issue := range issues {
			if strings.Contains(issue, "warning:") {
				logger.Warn("config issue", "detail", issue)
				continue
			}
			logger.Error("config issue", "detail", issue)
			fatal = true
		}
		if fatal {
			return nil, fmt.Errorf("invalid config: %s", path)
		}
	}

	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := library.NewStore(db)
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "events"))

	hasher := identity.NewHasher(cfg.Identity.HashKey, logger.With("component", "identity"))
	scanner := scan.New(hasher, logger.With("component", "scan"))
	prober := probe.New(cfg.FFmpeg.FFprobePath, logger.With("component", "probe"))
	transcoder := transcode.New(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.Encoder, cfg.FFmpeg.StillsDir,
		logger.With("component", "transcode"))
	resolver := subtitles.NewResolver(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath, hasher,
		logger.With("component", "subtitles"))

	var provider sync.Provider
	if cfg.Enrichment.Enabled {
		client := tmdb.NewClient(cfg.Enrichment.TMDBToken)
		provider = tmdb.NewProvider(client, cfg.Enrichment.ArtworkDir,
			cfg.Enrichment.DownloadExtraImages, logger.With("component", "tmdb"))
	}

	orch := sync.New(sync.Config{
		MovieRoots:      cfg.Libraries.Movies,
		TVRoots:         cfg.Libraries.TV,
		RefreshInterval: time.Duration(cfg.Enrichment.RefreshHours) * time.Hour,
	}, scanner, store, prober, transcoder, resolver, provider, bus, logger.With("component", "sync"))

	return &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		bus:      bus,
		eventLog: eventLog,
		orch:     orch,
		jobs:     sync.NewRegistry(),
	}, nil
}

func (a *app) Close() {
	a.bus.Close()
	_ = a.db.Close()
}
