// Package tmdb provides a client for The Movie Database API and turns
// its responses into catalog enrichment.
package tmdb

// searchResult is one row of a search response, movie and tv fields
// overlaid. Results arrive ranked; the first one wins.
type searchResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`          // movies
	Name         string  `json:"name"`           // tv
	ReleaseDate  string  `json:"release_date"`   // movies
	FirstAirDate string  `json:"first_air_date"` // tv
	Popularity   float64 `json:"popularity"`
}

func (r searchResult) displayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

type searchResponse struct {
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type network struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type castMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
	Roles       []struct {
		Character string `json:"character"`
	} `json:"roles"` // aggregate credits (tv)
}

type credits struct {
	Cast []castMember `json:"cast"`
}

type releaseDates struct {
	Results []struct {
		ISO3166 string `json:"iso_3166_1"`
		Dates   []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

type contentRatings struct {
	Results []struct {
		ISO3166 string `json:"iso_3166_1"`
		Rating  string `json:"rating"`
	} `json:"results"`
}

type image struct {
	FilePath string `json:"file_path"`
	ISO639   string `json:"iso_639_1"`
}

type images struct {
	Backdrops []image `json:"backdrops"`
	Posters   []image `json:"posters"`
	Logos     []image `json:"logos"`
}

type seasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
}

// movieDetails is /3/movie/{id} with credits, release_dates and images
// appended.
type movieDetails struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Overview            string       `json:"overview"`
	Tagline             string       `json:"tagline"`
	ReleaseDate         string       `json:"release_date"`
	Runtime             int          `json:"runtime"`
	VoteAverage         float64      `json:"vote_average"`
	VoteCount           int          `json:"vote_count"`
	PosterPath          string       `json:"poster_path"`
	BackdropPath        string       `json:"backdrop_path"`
	Genres              []genre      `json:"genres"`
	ProductionCompanies []company    `json:"production_companies"`
	Credits             credits      `json:"credits"`
	ReleaseDates        releaseDates `json:"release_dates"`
	Images              images       `json:"images"`
}

// tvDetails is /3/tv/{id} with aggregate_credits, content_ratings and
// images appended.
type tvDetails struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Overview            string          `json:"overview"`
	Tagline             string          `json:"tagline"`
	FirstAirDate        string          `json:"first_air_date"`
	EpisodeRunTime      []int           `json:"episode_run_time"`
	VoteAverage         float64         `json:"vote_average"`
	VoteCount           int             `json:"vote_count"`
	PosterPath          string          `json:"poster_path"`
	BackdropPath        string          `json:"backdrop_path"`
	Genres              []genre         `json:"genres"`
	ProductionCompanies []company       `json:"production_companies"`
	Networks            []network       `json:"networks"`
	Seasons             []seasonSummary `json:"seasons"`
	AggregateCredits    credits         `json:"aggregate_credits"`
	ContentRatings      contentRatings  `json:"content_ratings"`
	Images              images          `json:"images"`
}
