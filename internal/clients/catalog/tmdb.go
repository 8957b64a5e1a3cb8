package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"streambox/internal/models"
)

const maxCastMembers = 10

// TMDBClient implements Client against The Movie Database v3 API.
type TMDBClient struct {
	mu       sync.RWMutex
	apiKey   string
	baseURL  string
	language string

	httpClient *http.Client
}

func NewTMDBClient(apiKey, baseURL, language string) *TMDBClient {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &TMDBClient{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetAPIKey swaps the credential at runtime (config hot reload).
func (t *TMDBClient) SetAPIKey(key string) {
	t.mu.Lock()
	t.apiKey = key
	t.mu.Unlock()
}

// get fetches an endpoint and decodes the JSON body into out. A missing
// API key is a per-request configuration error, not a startup failure.
func (t *TMDBClient) get(endpoint string, extra url.Values, out interface{}) error {
	t.mu.RLock()
	apiKey := t.apiKey
	t.mu.RUnlock()

	if apiKey == "" {
		return fmt.Errorf("TMDB API key not configured")
	}

	params := url.Values{}
	params.Add("api_key", apiKey)
	if t.language != "" {
		params.Add("language", t.language)
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	resp, err := t.httpClient.Get(fmt.Sprintf("%s%s?%s", t.baseURL, endpoint, params.Encode()))
	if err != nil {
		return fmt.Errorf("failed to reach TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

func (t *TMDBClient) GetMovie(tmdbID int) (*models.Movie, error) {
	var details tmdbMovieDetails
	extra := url.Values{"append_to_response": {"credits"}}
	if err := t.get(fmt.Sprintf("/movie/%d", tmdbID), extra, &details); err != nil {
		return nil, err
	}
	return normalizeMovie(&details), nil
}

func (t *TMDBClient) GetTvShow(tmdbID int) (*models.TvShow, error) {
	var details tmdbTvDetails
	extra := url.Values{"append_to_response": {"credits"}}
	if err := t.get(fmt.Sprintf("/tv/%d", tmdbID), extra, &details); err != nil {
		return nil, err
	}
	return normalizeTvShow(&details), nil
}

func (t *TMDBClient) PopularMovies() ([]int, error) {
	var list tmdbListResponse
	if err := t.get("/movie/popular", nil, &list); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(list.Results))
	for _, r := range list.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (t *TMDBClient) PopularTvShows() ([]int, error) {
	var list tmdbListResponse
	if err := t.get("/tv/popular", nil, &list); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(list.Results))
	for _, r := range list.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (t *TMDBClient) SearchMulti(query string) ([]SearchHit, error) {
	var resp tmdbMultiResponse
	extra := url.Values{"query": {query}}
	if err := t.get("/search/multi", extra, &resp); err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		switch r.MediaType {
		case "movie":
			hits = append(hits, SearchHit{TMDBID: r.ID, MediaType: models.MediaTypeMovie})
		case "tv":
			hits = append(hits, SearchHit{TMDBID: r.ID, MediaType: models.MediaTypeTVShow})
		}
	}
	return hits, nil
}

func (t *TMDBClient) GetSeason(showTMDBID, season int) ([]models.Episode, error) {
	var resp tmdbSeasonResponse
	if err := t.get(fmt.Sprintf("/tv/%d/season/%d", showTMDBID, season), nil, &resp); err != nil {
		return nil, err
	}
	episodes := make([]models.Episode, 0, len(resp.Episodes))
	for _, e := range resp.Episodes {
		episodes = append(episodes, models.Episode{
			SeasonNumber:  e.SeasonNumber,
			EpisodeNumber: e.EpisodeNumber,
			Title:         e.Name,
			Overview:      strPtr(e.Overview),
			AirDate:       strPtr(e.AirDate),
			Runtime:       intPtr(e.Runtime),
			Rating:        floatPtr(e.VoteAverage),
			StillPath:     strPtr(e.StillPath),
		})
	}
	return episodes, nil
}

// --- normalization ---

func normalizeMovie(d *tmdbMovieDetails) *models.Movie {
	movie := &models.Movie{
		TMDBID:       d.ID,
		Title:        d.Title,
		Overview:     strPtr(d.Overview),
		ReleaseDate:  strPtr(d.ReleaseDate),
		Runtime:      intPtr(d.Runtime),
		Rating:       floatPtr(d.VoteAverage),
		Genres:       genreNames(d.Genres),
		PosterPath:   strPtr(d.PosterPath),
		BackdropPath: strPtr(d.BackdropPath),
		Cast:         castMembers(d.Credits.Cast),
		Director:     crewByJob(d.Credits.Crew, "Director"),
		Language:     d.OriginalLanguage,
	}
	if len(d.ProductionCompanies) > 0 {
		movie.Studio = strPtr(d.ProductionCompanies[0].Name)
	}
	if len(d.ProductionCountries) > 0 {
		movie.Country = d.ProductionCountries[0].Name
	}
	return movie
}

func normalizeTvShow(d *tmdbTvDetails) *models.TvShow {
	show := &models.TvShow{
		TMDBID:           d.ID,
		Title:            d.Name,
		Overview:         strPtr(d.Overview),
		FirstAirDate:     strPtr(d.FirstAirDate),
		LastAirDate:      strPtr(d.LastAirDate),
		NumberOfSeasons:  d.NumberOfSeasons,
		NumberOfEpisodes: d.NumberOfEpisodes,
		Rating:           floatPtr(d.VoteAverage),
		Genres:           genreNames(d.Genres),
		PosterPath:       strPtr(d.PosterPath),
		BackdropPath:     strPtr(d.BackdropPath),
		Cast:             castMembers(d.Credits.Cast),
		Language:         d.OriginalLanguage,
	}
	if len(d.CreatedBy) > 0 {
		show.Creator = strPtr(d.CreatedBy[0].Name)
	}
	if len(d.ProductionCompanies) > 0 {
		show.Studio = strPtr(d.ProductionCompanies[0].Name)
	}
	if len(d.OriginCountry) > 0 {
		show.Country = d.OriginCountry[0]
	}
	return show
}

func genreNames(genres []tmdbGenre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func castMembers(cast []tmdbCastMember) []models.CastMember {
	if len(cast) > maxCastMembers {
		cast = cast[:maxCastMembers]
	}
	members := make([]models.CastMember, 0, len(cast))
	for _, c := range cast {
		members = append(members, models.CastMember{
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: strPtr(c.ProfilePath),
		})
	}
	return members
}

func crewByJob(crew []tmdbCrewMember, job string) *string {
	for _, c := range crew {
		if c.Job == job {
			return strPtr(c.Name)
		}
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func floatPtr(f float64) *float64 {
	return &f
}
