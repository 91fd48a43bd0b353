package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-search/internal/model"
)

// ErrInvalidVideo is returned for arguments that name no video
var ErrInvalidVideo = errors.New("invalid video ID or URL")

// ParseVideoID accepts a bare video ID, a watch URL or a youtu.be link
func ParseVideoID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", ErrInvalidVideo
	}

	if strings.Contains(arg, "://") {
		u, err := url.Parse(arg)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidVideo, err)
		}
		var id string
		switch host := strings.TrimPrefix(u.Hostname(), "www."); {
		case host == "youtu.be":
			id = strings.Trim(u.Path, "/")
		case strings.HasSuffix(host, "youtube.com"):
			id = u.Query().Get("v")
			if id == "" && strings.HasPrefix(u.Path, "/shorts/") {
				id = strings.TrimPrefix(u.Path, "/shorts/")
			}
		}
		if id == "" || strings.Contains(id, "/") {
			return "", fmt.Errorf("%w: %s", ErrInvalidVideo, arg)
		}
		return id, nil
	}

	if strings.ContainsAny(arg, " /?&") {
		return "", fmt.Errorf("%w: %s", ErrInvalidVideo, arg)
	}
	return arg, nil
}

// resultFromArg builds a result for commands that start from a video ID
func resultFromArg(arg, title string) (model.SearchResult, error) {
	id, err := ParseVideoID(arg)
	if err != nil {
		return model.SearchResult{}, err
	}
	return model.NewSearchResult(id, title, "", 0, ""), nil
}
