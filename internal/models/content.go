package models

import "time"

type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTVShow MediaType = "tv"
)

// CastMember is one credited actor on a movie or show.
type CastMember struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profilePath,omitempty"`
}

// Movie is the canonical record stored for a film. ID is assigned by the
// store on first insert; TMDBID is the external catalog key.
type Movie struct {
	ID           string       `json:"id"`
	TMDBID       int          `json:"tmdbId"`
	Title        string       `json:"title"`
	Overview     *string      `json:"overview"`
	ReleaseDate  *string      `json:"releaseDate"`
	Runtime      *int         `json:"runtime"`
	Rating       *float64     `json:"rating"`
	Genres       []string     `json:"genres"`
	PosterPath   *string      `json:"posterPath"`
	BackdropPath *string      `json:"backdropPath"`
	Cast         []CastMember `json:"cast"`
	Director     *string      `json:"director"`
	Studio       *string      `json:"studio"`
	Language     string       `json:"language"`
	Country      string       `json:"country"`
}

type TvShow struct {
	ID               string       `json:"id"`
	TMDBID           int          `json:"tmdbId"`
	Title            string       `json:"title"`
	Overview         *string      `json:"overview"`
	FirstAirDate     *string      `json:"firstAirDate"`
	LastAirDate      *string      `json:"lastAirDate"`
	NumberOfSeasons  int          `json:"numberOfSeasons"`
	NumberOfEpisodes int          `json:"numberOfEpisodes"`
	Rating           *float64     `json:"rating"`
	Genres           []string     `json:"genres"`
	PosterPath       *string      `json:"posterPath"`
	BackdropPath     *string      `json:"backdropPath"`
	Cast             []CastMember `json:"cast"`
	Creator          *string      `json:"creator"`
	Studio           *string      `json:"studio"`
	Language         string       `json:"language"`
	Country          string       `json:"country"`
}

// Episode belongs to a stored TvShow. At most one episode exists per
// (TvShowID, SeasonNumber, EpisodeNumber).
type Episode struct {
	ID            string   `json:"id"`
	TvShowID      string   `json:"tvShowId"`
	SeasonNumber  int      `json:"seasonNumber"`
	EpisodeNumber int      `json:"episodeNumber"`
	Title         string   `json:"title"`
	Overview      *string  `json:"overview"`
	AirDate       *string  `json:"airDate"`
	Runtime       *int     `json:"runtime"`
	Rating        *float64 `json:"rating"`
	StillPath     *string  `json:"stillPath"`
}

type WatchlistItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ContentID   string    `json:"contentId"`
	ContentType MediaType `json:"contentType"`
	AddedAt     time.Time `json:"addedAt"`
}
