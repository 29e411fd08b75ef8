// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Libraries  LibrariesConfig  `toml:"libraries"`
	Identity   IdentityConfig   `toml:"identity"`
	FFmpeg     FFmpegConfig     `toml:"ffmpeg"`
	Enrichment EnrichmentConfig `toml:"enrichment"`
	Sync       SyncConfig       `toml:"sync"`
}

type ServerConfig struct {
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LibrariesConfig lists the root folders scanned per media kind.
type LibrariesConfig struct {
	Movies []string `toml:"movies"`
	TV     []string `toml:"tv"`
}

// IdentityConfig carries the key for the keyed identity hash. Leaving it
// empty falls back to a built-in key with a startup warning.
type IdentityConfig struct {
	HashKey string `toml:"hash_key"`
}

type FFmpegConfig struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
	Encoder     string `toml:"encoder"`
	StillsDir   string `toml:"stills_dir"`
}

type EnrichmentConfig struct {
	Enabled             bool   `toml:"enabled"`
	TMDBToken           string `toml:"tmdb_token"`
	ArtworkDir          string `toml:"artwork_dir"`
	DownloadExtraImages bool   `toml:"download_extra_images"`
	RefreshHours        int    `toml:"refresh_hours"`
}

type SyncConfig struct {
	Schedule string `toml:"schedule"` // cron expression for scheduled syncs
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/filmhaus.db"
	}
	if cfg.FFmpeg.FFmpegPath == "" {
		cfg.FFmpeg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFmpeg.FFprobePath == "" {
		cfg.FFmpeg.FFprobePath = "ffprobe"
	}
	if cfg.FFmpeg.Encoder == "" {
		cfg.FFmpeg.Encoder = "libx264"
	}
	if cfg.FFmpeg.StillsDir == "" {
		cfg.FFmpeg.StillsDir = "./data/stills"
	}
	if cfg.Enrichment.RefreshHours == 0 {
		cfg.Enrichment.RefreshHours = 24
	}
	if cfg.Sync.Schedule == "" {
		cfg.Sync.Schedule = "0 3 * * *"
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
