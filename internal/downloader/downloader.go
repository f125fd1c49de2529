package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"catty/internal/config"
	"catty/internal/logger"
	"catty/pkg/utils"
)

// ErrNoYtDlp is returned when neither yt-dlp nor youtube-dl can be found.
var ErrNoYtDlp = errors.New("an executable to `yt-dlp` is required for this command")

// OutputTemplate names downloads "Artist - Title.ext" so the metadata parser
// can split them again.
const OutputTemplate = "%(artist,creator,uploader,uploader_id|Unknown)s - " +
	"%(title,track,fulltitle,webpage_url_basename|Unnamed)s.%(ext)s"

// Downloader fetches audio with yt-dlp into WorkDir
type Downloader struct {
	Config     config.Config
	Logger     *logger.Logger
	WorkDir    string
	Playlist   bool
	OnProgress func() // Called after every finished URI

	ytdlp  string
	ffmpeg string
}

// New creates a new Downloader instance
func New(cfg config.Config, log *logger.Logger, workDir string) *Downloader {
	return &Downloader{
		Config:  cfg,
		Logger:  log,
		WorkDir: workDir,
	}
}

// findExecutable prefers the configured path, then the PATH lookups in order.
func (d *Downloader) findExecutable(configured string, names ...string) (string, bool) {
	if configured != "" {
		path := config.ExpandHome(configured)
		ok, err := utils.PathExists(path)
		if err != nil {
			d.Logger.Error("%v", err)
		}
		if ok {
			return path, true
		}
		d.Logger.Warn("installation does not exist at: %s, looking for installation in PATH", path)
	}
	for i, name := range names {
		if path, err := utils.LookupExecutable(name); err == nil {
			return path, true
		}
		if i+1 < len(names) {
			d.Logger.Warn("cannot find executable to `%s`, falling back to `%s`...", name, names[i+1])
		}
	}
	return "", false
}

// Prepare locates yt-dlp and ffmpeg. A missing ffmpeg only degrades
// thumbnail and metadata embedding.
func (d *Downloader) Prepare() error {
	ytdlp, ok := d.findExecutable(d.Config.YtDlpPath, "yt-dlp", "youtube-dl")
	if !ok {
		return ErrNoYtDlp
	}
	d.ytdlp = ytdlp

	if ffmpeg, ok := d.findExecutable(d.Config.FFmpegPath, "ffmpeg"); ok {
		d.ffmpeg = ffmpeg
	} else {
		d.Logger.Warn("cannot find executable to `ffmpeg`, some behaviour may be degraded")
	}

	d.Logger.Info("downloading files using installation: %s", d.ytdlp)
	return nil
}

// buildYtdlpArgs constructs command-line arguments for yt-dlp
func (d *Downloader) buildYtdlpArgs(uri string) []string {
	output := OutputTemplate
	playlistFlag := "--no-playlist"
	if d.Playlist {
		output = "%(playlist_title)s/" + OutputTemplate
		playlistFlag = "--yes-playlist"
	}

	args := []string{
		"--parse-metadata", "%(release_year|):%(date)s",
		"--embed-metadata",
		"--embed-thumbnail",
		"-f", "bestaudio",
		playlistFlag,
		"-o", output,
	}
	if d.ffmpeg != "" {
		args = append(args, "--ffmpeg-location", d.ffmpeg)
	}

	return append(args, uri)
}

// DownloadSingle runs yt-dlp for one URI. Output is streamed in verbose mode
// and otherwise kept for the debug log.
func (d *Downloader) DownloadSingle(ctx context.Context, uri string) error {
	args := d.buildYtdlpArgs(uri)
	cmd := exec.CommandContext(ctx, d.ytdlp, args...)
	cmd.Dir = d.WorkDir

	var stderr bytes.Buffer
	if d.Config.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = io.Discard
		cmd.Stderr = &stderr
	}

	d.Logger.Debug("running %s with args: %q", d.ytdlp, args)
	err := cmd.Run()
	if ctx.Err() != nil {
		return fmt.Errorf("download cancelled")
	}
	if err != nil && stderr.Len() > 0 {
		d.Logger.Debug("yt-dlp output for %s:\n%s", uri, stderr.String())
	}
	return err
}

// DownloadStats contains statistics about the download operation
type DownloadStats struct {
	Total      int
	Successful int
	Failed     int
}

// DownloadAll downloads every URI with at most Config.ParallelJobs yt-dlp
// processes at a time. A failed URI is reported and does not stop the rest.
func (d *Downloader) DownloadAll(ctx context.Context, uris []string) (DownloadStats, error) {
	stats := DownloadStats{Total: len(uris)}
	if d.ytdlp == "" {
		if err := d.Prepare(); err != nil {
			return stats, err
		}
	}

	jobs := d.Config.ParallelJobs
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	var mu sync.Mutex
	var failed []string
	succeeded := 0

	for i, uri := range uris {
		if ctx.Err() != nil {
			d.Logger.Warn("Downloads cancelled, waiting for active downloads to finish...")
			break
		}

		g.Go(func() error {
			d.Logger.Info("task [%d / %d] %s", i+1, len(uris), uri)

			err := d.DownloadSingle(ctx, uri)
			mu.Lock()
			switch {
			case err == nil:
				succeeded++
			case ctx.Err() == nil:
				d.Logger.Warn("received non-zero exit code for %s: %v", uri, err)
				failed = append(failed, uri)
			}
			if d.OnProgress != nil {
				d.OnProgress()
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	stats.Failed = len(failed)
	stats.Successful = succeeded
	if len(failed) > 0 {
		d.Logger.Debug("Failed URIs: %v", failed)
	}
	if ctx.Err() != nil {
		return stats, fmt.Errorf("downloads cancelled")
	}

	d.Logger.Info("Download completed: %d successful, %d failed", stats.Successful, stats.Failed)
	return stats, nil
}
