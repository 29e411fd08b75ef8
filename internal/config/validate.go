// internal/config/validate.go
package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validEncoders = map[string]bool{
	"libx264": true, "h264_nvenc": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// At least one library required
	if len(c.Libraries.Movies) == 0 && len(c.Libraries.TV) == 0 {
		errs = append(errs, "libraries: at least one library (movies or tv) must be configured")
	}

	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if !validEncoders[c.FFmpeg.Encoder] {
		errs = append(errs, fmt.Sprintf("ffmpeg.encoder: must be libx264 or h264_nvenc; got %q", c.FFmpeg.Encoder))
	}

	if c.Enrichment.Enabled && c.Enrichment.TMDBToken == "" {
		errs = append(errs, "enrichment.tmdb_token: required when enrichment is enabled")
	}
	if c.Enrichment.RefreshHours < 0 {
		errs = append(errs, fmt.Sprintf("enrichment.refresh_hours: must not be negative, got %d", c.Enrichment.RefreshHours))
	}

	// Library path warnings (non-fatal)
	for _, root := range append(append([]string{}, c.Libraries.Movies...), c.Libraries.TV...) {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("libraries: warning: directory %q does not exist", root))
		}
	}

	return errs
}
