package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/okvist/filmhaus/internal/library"
)

// similarityFloor is the Jaro-Winkler score below which a picked
// candidate is logged as suspicious. The candidate is still used: a low
// score usually means a localized or punctuated title, not a miss.
const similarityFloor = 0.7

// Provider turns a catalog entry's title and year into enrichment,
// optionally mirroring artwork to a local directory.
type Provider struct {
	client      *Client
	artworkDir  string
	extraImages bool
	log         *slog.Logger
}

// NewProvider creates a Provider. An empty artworkDir disables artwork
// downloads; extraImages additionally mirrors the logo beside poster and
// backdrop.
func NewProvider(client *Client, artworkDir string, extraImages bool, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{client: client, artworkDir: artworkDir, extraImages: extraImages, log: logger}
}

// Enrich resolves a title against TMDB and returns the normalized
// enrichment. Returns ErrNotFound when the search yields nothing.
func (p *Provider) Enrich(ctx context.Context, kind library.EntryKind, title string, year int) (*library.Enrichment, error) {
	var (
		results []searchResult
		err     error
	)
	if kind == library.KindTV {
		results, err = p.client.SearchTV(ctx, title, year)
	} else {
		results, err = p.client.SearchMovie(ctx, title, year)
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("enrich %q: %w", title, ErrNotFound)
	}

	top := results[0]
	p.verifyMatch(title, top.displayTitle())

	var e *library.Enrichment
	if kind == library.KindTV {
		d, err := p.client.GetTV(ctx, top.ID)
		if err != nil {
			return nil, err
		}
		e = normalizeTV(d)
		p.fillSeasonDetail(ctx, top.ID, e)
	} else {
		d, err := p.client.GetMovie(ctx, top.ID)
		if err != nil {
			return nil, err
		}
		e = normalizeMovie(d)
	}

	p.mirrorArtwork(ctx, e)
	return e, nil
}

// fillSeasonDetail replaces each summary season with the season's own
// endpoint response, which carries the authoritative name, artwork and
// episode data. A failed fetch keeps the summary values for that season.
func (p *Provider) fillSeasonDetail(ctx context.Context, tvID int64, e *library.Enrichment) {
	for i, s := range e.Seasons {
		detail, err := p.client.GetSeason(ctx, tvID, s.Number)
		if err != nil {
			p.log.Warn("season detail fetch failed",
				"tmdb_id", tvID, "season", s.Number, "error", err)
			continue
		}
		e.Seasons[i] = library.SeasonInfo{
			Number:       s.Number,
			Name:         detail.Name,
			Overview:     detail.Overview,
			PosterPath:   detail.PosterPath,
			AirDate:      detail.AirDate,
			EpisodeCount: detail.EpisodeCount,
		}
	}
}

// verifyMatch compares the searched title against the picked candidate
// and logs suspiciously distant matches.
func (p *Provider) verifyMatch(wanted, got string) {
	sim := float64(edlib.JaroWinklerSimilarity(strings.ToLower(wanted), strings.ToLower(got)))
	if sim < similarityFloor {
		p.log.Warn("weak title match",
			"wanted", wanted, "got", got, "similarity", fmt.Sprintf("%.2f", sim))
		return
	}
	p.log.Debug("title match verified", "wanted", wanted, "got", got,
		"similarity", fmt.Sprintf("%.2f", sim))
}

// mirrorArtwork downloads poster and backdrop (plus logo when extra
// images are enabled) into the artwork dir. Failures are logged and
// skipped; enrichment carries the remote paths either way.
func (p *Provider) mirrorArtwork(ctx context.Context, e *library.Enrichment) {
	if p.artworkDir == "" {
		return
	}
	paths := []string{e.PosterPath, e.BackdropPath}
	if p.extraImages {
		paths = append(paths, e.LogoPath)
		for _, m := range e.Cast {
			paths = append(paths, m.ProfilePath)
		}
		for _, s := range e.Seasons {
			paths = append(paths, s.PosterPath)
		}
	}
	for _, imagePath := range paths {
		if imagePath == "" {
			continue
		}
		if err := p.downloadImage(ctx, imagePath); err != nil {
			p.log.Warn("artwork download failed", "path", imagePath, "error", err)
		}
	}
}

func (p *Provider) downloadImage(ctx context.Context, imagePath string) error {
	dest := filepath.Join(p.artworkDir, filepath.Base(imagePath))
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	if err := os.MkdirAll(p.artworkDir, 0o755); err != nil {
		return fmt.Errorf("create artwork dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.client.imageURL+imagePath, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := p.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch image: %s", resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
