package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"catty/internal/config"
	"catty/internal/confirm"
	"catty/internal/logger"
	"catty/internal/metadata"
	"catty/internal/pipeline"
	"catty/internal/progress"
	"catty/internal/shutdown"
)

// appContext is shared by all subcommands. It is filled in by the root
// command's pre-run hook.
type appContext struct {
	configPath string
	verbose    bool

	cfg      config.Config
	logger   *logger.Logger
	shutdown *shutdown.Handler
	bar      *progress.Bar
}

func newRootCommand(app *appContext) *cobra.Command {
	root := &cobra.Command{
		Use:   "catty",
		Short: "Music file manager",
		Long: `catty downloads, renames and sorts local audio files using their tags
and filenames.

Config file locations (checked in order):
  ./catty.yaml
  $XDG_CONFIG_HOME/catty/config.yaml
  ~/.catty.yaml

In normal mode a progress bar is shown and detailed logs are saved under
$XDG_DATA_HOME/catty/logs/. Verbose mode prints everything instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup()
		},
	}
	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to config file")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Show detailed output")

	root.AddCommand(
		newAddCommand(app),
		newRenameCommand(app),
		newSortCommand(app),
		newInitConfigCommand(),
	)
	return root
}

// setup loads the configuration and starts logging. Priority: flags >
// config file > defaults.
func (app *appContext) setup() error {
	cfg, err := config.LoadConfigFile(app.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if app.verbose {
		cfg.Verbose = true
	}
	app.cfg = cfg

	app.logger = logger.New(cfg.Verbose)
	if !cfg.Verbose {
		app.startFileLog()
	}
	path := app.configPath
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		app.logger.Debug("Loaded configuration from: %s", path)
	}

	app.shutdown = shutdown.New(app.logger)
	app.shutdown.Listen()
	return nil
}

func (app *appContext) startFileLog() {
	logDir := config.GetDefaultLogPath()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		return
	}
	logFile := filepath.Join(logDir, fmt.Sprintf("catty_%s.log", time.Now().Format("2006-01-02_15-04-05")))
	if err := app.logger.SetFileLog(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
		return
	}
	app.logger.Debug("Logging to file: %s", logFile)
}

func (app *appContext) close() {
	if app.bar != nil {
		app.bar.Finish()
	}
	if app.logger != nil {
		app.logger.Close()
	}
}

// runner validates the final configuration and wires the prompt and the
// progress bar into a pipeline runner.
func (app *appContext) runner(label string, yes bool) (*pipeline.Runner, error) {
	if err := app.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	var gate confirm.Gate = confirm.NewPrompt(os.Stdin, os.Stdout, app.logger)
	if yes {
		gate = confirm.Always{}
	}
	r := pipeline.New(app.cfg, app.logger, gate)

	if !app.cfg.Verbose {
		r.Hooks = pipeline.Hooks{
			OnStart: func(total int) {
				app.bar = progress.New(label, total)
				app.logger.SetProgressBar(true)
			},
			OnProgress: func() {
				if app.bar != nil {
					app.bar.Increment()
				}
			},
			OnFinish: func() {
				if app.bar != nil {
					app.bar.Finish()
					app.bar = nil
				}
				app.logger.SetProgressBar(false)
			},
		}
	}
	return r, nil
}

func newAddCommand(app *appContext) *cobra.Command {
	var (
		playlist bool
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "add <uri>...",
		Short: "Download audio with yt-dlp into the working directory",
		Long: `Wrapper around yt-dlp that downloads the best available audio with as much
metadata as it can grab. Files are named "Artist - Title.ext" so rename and
sort can pick them up. Video is never downloaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				app.cfg.ParallelJobs = jobs
			}
			r, err := app.runner("downloading", true)
			if err != nil {
				return err
			}
			return r.Add(app.shutdown.Context(), args, playlist)
		},
	}
	cmd.Flags().BoolVarP(&playlist, "playlist", "p", false, "Download whole playlists into a folder named after them")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of parallel downloads (1-10)")
	return cmd
}

func newRenameCommand(app *appContext) *cobra.Command {
	var (
		format   string
		noArtist bool
		album    bool
		number   bool
		noTitle  bool
		yes      bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "rename [path]...",
		Short: "Give audio files a consistent name",
		Long: `Renames audio files so they follow one format, built from their tags and
current filename. Paths may be files, directories or glob patterns; with none,
the audio files in the working directory are used.

Format letters: a (artists), A (album), n (track number), t (title).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				app.cfg.RenameFormat = format
			}
			r, err := app.runner("reading tags", yes)
			if err != nil {
				return err
			}
			opts := pipeline.RenameOptions{
				Format: metadata.FormatOptions{
					Format: app.cfg.RenameFormat,
					Artist: !noArtist,
					Album:  album,
					Number: number,
					Title:  !noTitle,
				},
				DryRun: dryRun,
			}
			return r.Rename(app.shutdown.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultRenameFormat, "Order of name components")
	cmd.Flags().BoolVar(&noArtist, "no-artist", false, "Leave artists out of the name")
	cmd.Flags().BoolVar(&album, "album", false, "Include the album in the name")
	cmd.Flags().BoolVar(&number, "number", false, "Include the track number in the name")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "Leave the title out of the name")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before renaming")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the new names without renaming")
	return cmd
}

func newSortCommand(app *appContext) *cobra.Command {
	var (
		opts    pipeline.SortOptions
		library string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "sort [path]...",
		Short: "Move audio files into artist and album folders",
		Long: `Organises audio files into <library>/<A-F|G-K|L-P|Q-U|V-Z|.other>/<author>/<album>/.
Album folders whose tracks all credit one album artist move as a whole.
Tracks without a known artist go to .other/.unknown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("library") {
				app.cfg.LibraryDir = config.ExpandHome(library)
			}
			r, err := app.runner("reading tags", yes)
			if err != nil {
				return err
			}
			return r.Sort(app.shutdown.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&library, "library", "l", ".", "Library root to sort into")
	cmd.Flags().BoolVar(&opts.CleanDirs, "clean-dirs", false, "Remove directories left empty")
	cmd.Flags().BoolVar(&opts.CleanFiles, "clean-files", false, "Remove download leftovers and cover images from vacated directories")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before moving")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show the plan without moving anything")
	return cmd
}

func newInitConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetDefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("Config file already exists at: %s\n", path)
				fmt.Println("Delete it first if you want to recreate it.")
				return nil
			}

			if err := config.SaveConfigFile(config.DefaultConfig(), path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}

			fmt.Printf("Created default config file at: %s\n", path)
			fmt.Println("\nAvailable options:")
			fmt.Println("  library_dir: root folder sort moves files into")
			fmt.Println("  ytdlp_path / ffmpeg_path: executables used by add (default: PATH)")
			fmt.Println("  parallel_jobs: 1-10 (number of parallel downloads)")
			fmt.Println("  rename_format: order of a, A, n, t (default: aAnt)")
			fmt.Println("  verbose: true/false (enable detailed logging)")
			return nil
		},
	}
}
