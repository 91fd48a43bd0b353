package platform

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestPlayerArgs(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=abc"
	if got := PlayerArgs(url, false); !reflect.DeepEqual(got, []string{url}) {
		t.Errorf("Unexpected video args: %v", got)
	}
	if got := PlayerArgs(url, true); !reflect.DeepEqual(got, []string{NoVideoFlag, url}) {
		t.Errorf("Unexpected audio args: %v", got)
	}
}

func TestPlayerPlay(t *testing.T) {
	var gotName string
	var gotArgs []string
	p := &Player{
		path: "mpv",
		find: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		start: func(name string, args ...string) error {
			gotName, gotArgs = name, args
			return nil
		},
	}

	if err := p.Play(context.Background(), "https://youtu.be/x", true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotName != "/usr/bin/mpv" {
		t.Errorf("Expected resolved mpv path, got %s", gotName)
	}
	if !reflect.DeepEqual(gotArgs, []string{NoVideoFlag, "https://youtu.be/x"}) {
		t.Errorf("Unexpected args: %v", gotArgs)
	}
}

func TestPlayerMissingTool(t *testing.T) {
	p := &Player{
		path: "mpv",
		find: func(string) (string, error) { return "", ErrToolNotFound },
		start: func(string, ...string) error {
			t.Fatal("start must not be called")
			return nil
		},
	}
	if err := p.Play(context.Background(), "u", false); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Expected ErrToolNotFound, got %v", err)
	}
}

func TestPlayerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewPlayer("").Play(ctx, "u", false); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
