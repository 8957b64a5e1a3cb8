package core

import (
	"errors"
	"fmt"
)

// EmbedServer describes one third-party streaming provider's playback URL.
type EmbedServer struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// ServerList is the resolved set of embed servers; the first entry is the
// default.
type ServerList struct {
	Servers       []EmbedServer `json:"servers"`
	DefaultServer EmbedServer   `json:"defaultServer"`
}

var ErrMissingVideoID = errors.New("video_id is required")

// ResolveServers builds the embed URL list for a title. It is a pure
// function of its inputs: no lookups, no network. The series URL shape is
// used only when the request is for a TV episode with both season and
// episode present; anything else gets the movie shape.
func ResolveServers(videoID, mediaType, season, episode string) (*ServerList, error) {
	if videoID == "" {
		return nil, ErrMissingVideoID
	}

	isTV := mediaType == "tv" && season != "" && episode != ""

	vidsrc := EmbedServer{Name: "Vidsrc", Quality: "HD"}
	vipstream := EmbedServer{Name: "Vipstream", Quality: "4K"}

	if isTV {
		vidsrc.URL = fmt.Sprintf("https://vidsrc.net/embed/tv/%s/%s/%s", videoID, season, episode)
		vipstream.URL = fmt.Sprintf("https://vipstream.tv/embed-2/tv?tmdb=%s&season=%s&episode=%s", videoID, season, episode)
	} else {
		vidsrc.URL = fmt.Sprintf("https://vidsrc.net/embed/movie/%s", videoID)
		vipstream.URL = fmt.Sprintf("https://vipstream.tv/embed-2/movie?tmdb=%s", videoID)
	}

	servers := []EmbedServer{vidsrc, vipstream}
	return &ServerList{Servers: servers, DefaultServer: servers[0]}, nil
}
