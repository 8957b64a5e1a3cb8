package catalog

// Typed TMDB response shapes. Responses are decoded into these structs at
// the boundary instead of being walked as loose maps.

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbCompany struct {
	Name string `json:"name"`
}

type tmdbCountry struct {
	Name string `json:"name"`
}

type tmdbPerson struct {
	Name string `json:"name"`
}

type tmdbCastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type tmdbCrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type tmdbCredits struct {
	Cast []tmdbCastMember `json:"cast"`
	Crew []tmdbCrewMember `json:"crew"`
}

type tmdbMovieDetails struct {
	ID                  int           `json:"id"`
	Title               string        `json:"title"`
	Overview            string        `json:"overview"`
	ReleaseDate         string        `json:"release_date"`
	Runtime             int           `json:"runtime"`
	VoteAverage         float64       `json:"vote_average"`
	Genres              []tmdbGenre   `json:"genres"`
	PosterPath          string        `json:"poster_path"`
	BackdropPath        string        `json:"backdrop_path"`
	ProductionCompanies []tmdbCompany `json:"production_companies"`
	ProductionCountries []tmdbCountry `json:"production_countries"`
	OriginalLanguage    string        `json:"original_language"`
	Credits             tmdbCredits   `json:"credits"`
}

type tmdbTvDetails struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Overview            string        `json:"overview"`
	FirstAirDate        string        `json:"first_air_date"`
	LastAirDate         string        `json:"last_air_date"`
	NumberOfSeasons     int           `json:"number_of_seasons"`
	NumberOfEpisodes    int           `json:"number_of_episodes"`
	VoteAverage         float64       `json:"vote_average"`
	Genres              []tmdbGenre   `json:"genres"`
	PosterPath          string        `json:"poster_path"`
	BackdropPath        string        `json:"backdrop_path"`
	CreatedBy           []tmdbPerson  `json:"created_by"`
	ProductionCompanies []tmdbCompany `json:"production_companies"`
	OriginCountry       []string      `json:"origin_country"`
	OriginalLanguage    string        `json:"original_language"`
	Credits             tmdbCredits   `json:"credits"`
}

type tmdbListResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

type tmdbMultiResponse struct {
	Results []struct {
		ID        int    `json:"id"`
		MediaType string `json:"media_type"`
	} `json:"results"`
}

type tmdbSeasonResponse struct {
	Episodes []struct {
		SeasonNumber  int     `json:"season_number"`
		EpisodeNumber int     `json:"episode_number"`
		Name          string  `json:"name"`
		Overview      string  `json:"overview"`
		AirDate       string  `json:"air_date"`
		Runtime       int     `json:"runtime"`
		VoteAverage   float64 `json:"vote_average"`
		StillPath     string  `json:"still_path"`
	} `json:"episodes"`
}
