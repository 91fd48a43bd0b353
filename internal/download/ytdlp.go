package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-search/internal/model"
)

// Format presets
const (
	AudioFormat       = "bestaudio"
	AudioCodec        = "mp3"
	VideoFormat       = "bestvideo+bestaudio"
	VideoMergeFormat  = "mp4"
	ProgressFrequency = 500 * time.Millisecond
)

// ytdlpRunner drives the yt-dlp executable through go-ytdlp
type ytdlpRunner struct{}

func (ytdlpRunner) Run(ctx context.Context, req Request, progress func(Progress)) (string, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		Output(req.OutputTemplate)

	if req.ToolPath != "" {
		dl = dl.SetExecutable(req.ToolPath)
	}

	switch req.Mode {
	case model.DownloadVideo:
		dl = dl.Format(VideoFormat).MergeOutputFormat(VideoMergeFormat)
	default:
		dl = dl.Format(AudioFormat).ExtractAudio().AudioFormat(AudioCodec)
	}

	dl.ProgressFunc(ProgressFrequency, func(update ytdlp.ProgressUpdate) {
		progress(progressFromUpdate(update))
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return "", err
	}

	info, err := result.GetExtractedInfo()
	if err == nil && len(info) > 0 && info[0].Filename != nil {
		return *info[0].Filename, nil
	}
	return "", nil
}

func progressFromUpdate(update ytdlp.ProgressUpdate) Progress {
	var p Progress
	if update.TotalBytes > 0 {
		p.Percent = int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
	}
	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}
	return p
}
