package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"catty/internal/downloader"
)

// Add downloads each URI with yt-dlp into the working directory. A missing
// yt-dlp is reported without failing the command.
func (r *Runner) Add(ctx context.Context, uris []string, playlist bool) error {
	if len(uris) == 0 {
		return fmt.Errorf("no URIs given")
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	dl := downloader.New(r.Config, r.Logger, wd)
	dl.Playlist = playlist
	if err := dl.Prepare(); err != nil {
		if errors.Is(err, downloader.ErrNoYtDlp) {
			r.Logger.Error("%v, aborting", err)
			r.Logger.Info("make sure `yt-dlp` or `youtube-dl` is in your PATH\n" +
				"alternatively, add `ytdlp_path: <path>` to your catty.yaml")
			return nil
		}
		return err
	}
	dl.OnProgress = r.progress

	r.start(len(uris))
	stats, err := dl.DownloadAll(ctx, uris)
	r.finish()
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if stats.Failed > 0 {
		r.Logger.Warn("%d of %d downloads failed, see the log for yt-dlp output", stats.Failed, stats.Total)
	}
	return nil
}
