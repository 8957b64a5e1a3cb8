// Package catalog talks to the external metadata provider and normalizes
// its responses into the canonical record shapes.
package catalog

import (
	"errors"

	"streambox/internal/models"
)

// ErrNotFound reports that the provider has no title for the requested id.
var ErrNotFound = errors.New("title not found in catalog")

// SearchHit is one entry of a combined search, before hydration.
type SearchHit struct {
	TMDBID    int
	MediaType models.MediaType
}

// Client is the interface all catalog providers must implement. Returned
// records are fully normalized but carry no internal id; the store assigns
// one on insert.
type Client interface {
	GetMovie(tmdbID int) (*models.Movie, error)
	GetTvShow(tmdbID int) (*models.TvShow, error)

	// PopularMovies and PopularTvShows return catalog ids in the
	// provider's own popularity order.
	PopularMovies() ([]int, error)
	PopularTvShows() ([]int, error)

	SearchMulti(query string) ([]SearchHit, error)

	// GetSeason returns the episodes of one season, normalized but without
	// internal or show ids.
	GetSeason(showTMDBID, season int) ([]models.Episode, error)
}
