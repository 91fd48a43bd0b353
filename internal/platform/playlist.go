package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-search/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistURLParam = "list"
)

// ErrInvalidPlaylist is returned for input that carries no playlist ID
var ErrInvalidPlaylist = errors.New("invalid playlist URL")

// PlaylistFetchFunc returns the videos of a playlist by ID
type PlaylistFetchFunc func(ctx context.Context, playlistID string) ([]model.SearchResult, error)

// PlaylistLister lists the videos of a YouTube playlist as results
type PlaylistLister struct {
	timeout time.Duration
	fetch   PlaylistFetchFunc
}

// NewPlaylistLister creates a lister backed by the pure Go YouTube client
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{timeout: DefaultPlaylistTimeout, fetch: fetchPlaylist}
}

// SetTimeout sets the timeout for one listing
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// List returns the playlist videos in playlist order
func (p *PlaylistLister) List(ctx context.Context, rawURL string) ([]model.SearchResult, error) {
	playlistID, err := ExtractPlaylistID(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	log.Info().Str("op", "platform/playlist").Msgf("Listing playlist %s", playlistID)
	results, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	log.Debug().Str("op", "platform/playlist").Msgf("Playlist %s has %d videos", playlistID, len(results))
	return results, nil
}

// ExtractPlaylistID accepts playlist or watch URLs with a list parameter, or a bare ID
func ExtractPlaylistID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidPlaylist)
	}

	if !strings.ContainsAny(rawURL, "/?=&") {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPlaylist, err)
	}
	id := u.Query().Get(PlaylistURLParam)
	if id == "" {
		return "", fmt.Errorf("%w: no %s parameter in %s", ErrInvalidPlaylist, PlaylistURLParam, rawURL)
	}
	return id, nil
}

func fetchPlaylist(ctx context.Context, playlistID string) ([]model.SearchResult, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		results = append(results, model.NewSearchResult(it.VideoID, it.Title, "", 0, ""))
	}
	return results, nil
}
