package tmdb

import (
	"strings"

	"github.com/okvist/filmhaus/internal/library"
)

// maxCast caps how many credited actors are kept per entry.
const maxCast = 20

// genreRenames maps TMDB genre names onto the catalog's shorter labels.
// Compound genres split into their parts.
var genreRenames = map[string][]string{
	"Science Fiction":    {"Sci-Fi"},
	"Action & Adventure": {"Action", "Adventure"},
	"Sci-Fi & Fantasy":   {"Sci-Fi", "Fantasy"},
	"War & Politics":     {"War", "Politics"},
}

func normalizeGenres(in []genre) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, g := range in {
		names, ok := genreRenames[g.Name]
		if !ok {
			names = []string{g.Name}
		}
		for _, n := range names {
			if _, dup := seen[n]; dup || n == "" {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// movieRatings flattens the per-country release dates into deduped
// (rating, country) pairs, keeping every country's certification.
func movieRatings(rd releaseDates) []library.RatingPair {
	var out []library.RatingPair
	seen := make(map[library.RatingPair]struct{})
	for _, r := range rd.Results {
		for _, d := range r.Dates {
			if d.Certification == "" {
				continue
			}
			p := library.RatingPair{Rating: d.Certification, Country: r.ISO3166}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func tvRatings(cr contentRatings) []library.RatingPair {
	var out []library.RatingPair
	seen := make(map[library.RatingPair]struct{})
	for _, r := range cr.Results {
		if r.Rating == "" {
			continue
		}
		p := library.RatingPair{Rating: r.Rating, Country: r.ISO3166}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func normalizeCast(in []castMember) []library.CastMember {
	var out []library.CastMember
	for i, m := range in {
		if i >= maxCast {
			break
		}
		character := m.Character
		if character == "" && len(m.Roles) > 0 {
			character = m.Roles[0].Character
		}
		out = append(out, library.CastMember{
			Name:        m.Name,
			Character:   character,
			ProfilePath: m.ProfilePath,
			Order:       i,
		})
	}
	return out
}

// englishLogo returns the first English logo path, or the first logo of
// any language when no English one exists.
func englishLogo(logos []image) string {
	for _, l := range logos {
		if strings.EqualFold(l.ISO639, "en") {
			return l.FilePath
		}
	}
	if len(logos) > 0 {
		return logos[0].FilePath
	}
	return ""
}

func companyNames(in []company) []string {
	var out []string
	for _, c := range in {
		if c.Name != "" {
			out = append(out, c.Name)
		}
	}
	return out
}

func networkNames(in []network) []string {
	var out []string
	for _, n := range in {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out
}

func normalizeMovie(d *movieDetails) *library.Enrichment {
	return &library.Enrichment{
		TMDBID:       d.ID,
		Overview:     d.Overview,
		Tagline:      d.Tagline,
		ReleaseDate:  d.ReleaseDate,
		Runtime:      d.Runtime,
		VoteAverage:  d.VoteAverage,
		VoteCount:    d.VoteCount,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		LogoPath:     englishLogo(d.Images.Logos),
		Ratings:      movieRatings(d.ReleaseDates),
		Genres:       normalizeGenres(d.Genres),
		Companies:    companyNames(d.ProductionCompanies),
		Cast:         normalizeCast(d.Credits.Cast),
	}
}

func normalizeTV(d *tvDetails) *library.Enrichment {
	runtime := 0
	if len(d.EpisodeRunTime) > 0 {
		runtime = d.EpisodeRunTime[0]
	}

	var seasons []library.SeasonInfo
	for _, s := range d.Seasons {
		// Specials (season 0) stay out of the catalog.
		if s.SeasonNumber == 0 {
			continue
		}
		seasons = append(seasons, library.SeasonInfo{
			Number:       s.SeasonNumber,
			Name:         s.Name,
			Overview:     s.Overview,
			PosterPath:   s.PosterPath,
			AirDate:      s.AirDate,
			EpisodeCount: s.EpisodeCount,
		})
	}

	return &library.Enrichment{
		TMDBID:       d.ID,
		Overview:     d.Overview,
		Tagline:      d.Tagline,
		ReleaseDate:  d.FirstAirDate,
		Runtime:      runtime,
		VoteAverage:  d.VoteAverage,
		VoteCount:    d.VoteCount,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		LogoPath:     englishLogo(d.Images.Logos),
		Ratings:      tvRatings(d.ContentRatings),
		Genres:       normalizeGenres(d.Genres),
		Companies:    companyNames(d.ProductionCompanies),
		Networks:     networkNames(d.Networks),
		Cast:         normalizeCast(d.AggregateCredits.Cast),
		Seasons:      seasons,
	}
}
