package tmdb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/time/rate"

	"github.com/okvist/filmhaus/internal/library"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func enrichServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/3/search/movie", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[
			{"id":550,"title":"Example Media","release_date":"2020-01-01"},
			{"id":9,"title":"Wrong One"}]}`))
	})
	mux.HandleFunc("/3/movie/550", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id":550,"title":"Example Media","overview":"A film.","runtime":120,
			"poster_path":"/poster.jpg","backdrop_path":"/backdrop.jpg",
			"genres":[{"id":878,"name":"Science Fiction"}],
			"production_companies":[{"id":1,"name":"Example Studios"}],
			"credits":{"cast":[{"name":"Lead Actor","character":"Hero","order":0}]},
			"release_dates":{"results":[{"iso_3166_1":"US","release_dates":[{"certification":"PG-13"}]}]},
			"images":{"logos":[{"file_path":"/logo.png","iso_639_1":"en"}]}}`))
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image-bytes"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestProvider_Enrich(t *testing.T) {
	server := enrichServer(t)
	client := NewClient("tok",
		WithBaseURL(server.URL),
		WithImageBaseURL(server.URL+"/img"),
		WithRateLimit(rate.Inf, 1),
	)
	p := NewProvider(client, "", false, discardLogger())

	e, err := p.Enrich(context.Background(), library.KindMovie, "Example Media", 2020)
	require.NoError(t, err)

	assert.Equal(t, int64(550), e.TMDBID, "top-ranked candidate wins")
	assert.Equal(t, []library.RatingPair{{Rating: "PG-13", Country: "US"}}, e.Ratings)
	assert.Equal(t, []string{"Sci-Fi"}, e.Genres)
	assert.Equal(t, []string{"Example Studios"}, e.Companies)
	assert.Equal(t, "/logo.png", e.LogoPath)
	require.Len(t, e.Cast, 1)
	assert.Equal(t, "Hero", e.Cast[0].Character)
}

func TestProvider_Enrich_TVFetchesSeasonDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/3/search/tv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":1399,"name":"Example Show","first_air_date":"2019-04-14"}]}`))
	})
	mux.HandleFunc("/3/tv/1399", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id":1399,"name":"Example Show","first_air_date":"2019-04-14",
			"content_ratings":{"results":[{"iso_3166_1":"US","rating":"TV-MA"},{"iso_3166_1":"GB","rating":"15"}]},
			"seasons":[
				{"season_number":1,"name":"Season 1","episode_count":10},
				{"season_number":2,"name":"Season 2","episode_count":8}]}`))
	})
	mux.HandleFunc("/3/tv/1399/season/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"season_number":1,"name":"The Beginning","overview":"It begins.",
			"poster_path":"/s1.jpg","air_date":"2019-04-14",
			"episodes":[{},{},{},{},{},{},{},{},{}]}`))
	})
	mux.HandleFunc("/3/tv/1399/season/2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient("tok", WithBaseURL(server.URL), WithRateLimit(rate.Inf, 1))
	p := NewProvider(client, "", false, discardLogger())

	e, err := p.Enrich(context.Background(), library.KindTV, "Example Show", 2019)
	require.NoError(t, err)

	assert.Equal(t, []library.RatingPair{
		{Rating: "TV-MA", Country: "US"},
		{Rating: "15", Country: "GB"},
	}, e.Ratings, "every country's rating survives")

	require.Len(t, e.Seasons, 2)
	// Season 1 took the detail endpoint's values, counting episodes when
	// the summary count is absent.
	assert.Equal(t, library.SeasonInfo{
		Number:       1,
		Name:         "The Beginning",
		Overview:     "It begins.",
		PosterPath:   "/s1.jpg",
		AirDate:      "2019-04-14",
		EpisodeCount: 9,
	}, e.Seasons[0])
	// Season 2's fetch failed so the summary values stand.
	assert.Equal(t, "Season 2", e.Seasons[1].Name)
	assert.Equal(t, 8, e.Seasons[1].EpisodeCount)
}

func TestProvider_Enrich_NoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/3/search/tv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient("tok", WithBaseURL(server.URL), WithRateLimit(rate.Inf, 1))
	p := NewProvider(client, "", false, discardLogger())

	_, err := p.Enrich(context.Background(), library.KindTV, "Nothing Matches This", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvider_Enrich_MirrorsArtwork(t *testing.T) {
	server := enrichServer(t)
	client := NewClient("tok",
		WithBaseURL(server.URL),
		WithImageBaseURL(server.URL+"/img"),
		WithRateLimit(rate.Inf, 1),
	)
	artworkDir := t.TempDir()
	p := NewProvider(client, artworkDir, true, discardLogger())

	_, err := p.Enrich(context.Background(), library.KindMovie, "Example Media", 2020)
	require.NoError(t, err)

	for _, name := range []string{"poster.jpg", "backdrop.jpg", "logo.png"} {
		data, err := os.ReadFile(filepath.Join(artworkDir, name))
		require.NoError(t, err, "artwork %s should be mirrored", name)
		assert.Equal(t, "image-bytes", string(data))
	}
}
