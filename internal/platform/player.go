package platform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Player flags
const (
	NoVideoFlag = "--no-video"
)

// Player launches videos in an external media player (mpv by default)
type Player struct {
	path  string
	find  func(string) (string, error)
	start StartFunc
}

// NewPlayer creates a player for the executable at path (a bare name is resolved through PATH)
func NewPlayer(path string) *Player {
	if path == "" {
		path = PlayerTool
	}
	return &Player{path: path, find: FindTool, start: StartDetached}
}

// PlayerArgs returns the player arguments for url
func PlayerArgs(url string, audioOnly bool) []string {
	if audioOnly {
		return []string{NoVideoFlag, url}
	}
	return []string{url}
}

// Play starts the player for url and returns without waiting for it.
// With audioOnly the player runs without a video window.
func (p *Player) Play(ctx context.Context, url string, audioOnly bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := p.find(p.path)
	if err != nil {
		return err
	}
	log.Info().Str("op", "platform/play").Msgf("Playing %s (audio only: %t)", url, audioOnly)
	if err := p.start(path, PlayerArgs(url, audioOnly)...); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.path, err)
	}
	return nil
}
