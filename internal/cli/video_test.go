package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-search/internal/cli"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{arg: "  dQw4w9WgXcQ ", want: "dQw4w9WgXcQ"},
		{arg: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", want: "dQw4w9WgXcQ"},
		{arg: "https://music.youtube.com/watch?v=abc", want: "abc"},
		{arg: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{arg: "https://www.youtube.com/shorts/short1", want: "short1"},
		{arg: "https://www.youtube.com/playlist?list=PL1", wantErr: true},
		{arg: "https://example.com/watch?v=abc", wantErr: true},
		{arg: "", wantErr: true},
		{arg: "two words", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := cli.ParseVideoID(tt.arg)
			if tt.wantErr {
				require.ErrorIs(t, err, cli.ErrInvalidVideo)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
