// Package main is the entry point for the dirlist application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/dirlist/internal/config"
	"github.com/joe/dirlist/internal/listing"
	"github.com/joe/dirlist/internal/logger"
	"github.com/joe/dirlist/internal/tui"
	"github.com/joe/dirlist/pkg/filesystem"
)

// Exit codes.
const (
	exitOK      = 0
	exitListing = 1
	exitUsage   = 2
)

// configEnvVar names an explicit defaults file.
const configEnvVar = "DIRLIST_CONFIG"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run lists every requested path and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defaults, err := config.Load(os.Getenv(configEnvVar))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Parse(args, defaults, stdout)
	if errors.Is(err, config.ErrShown) {
		return exitOK
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger.SetOutput(stderr)
	logger.SetLevel(cfg.LogLevel)

	if cfg.LogFile != "" {
		closer, err := logger.EnableFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		defer func() { _ = closer.Close() }()
	}

	opts := filesystem.Options{
		PoolSize:    cfg.PoolSize,
		S3Endpoint:  cfg.S3Endpoint,
		S3Region:    cfg.S3Region,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
	}

	if cfg.Interactive {
		if isTerminal(stdout) {
			return browse(ctx, cfg, opts, stderr)
		}

		logger.Warn("Not a terminal; listing instead of browsing")
	}

	code := exitOK

	for _, raw := range cfg.Paths {
		if !listPath(ctx, raw, cfg, opts, stdout, stderr) {
			code = exitListing
		}
	}

	return code
}

// browse runs the interactive browser on the first path.
func browse(ctx context.Context, cfg *config.Config, opts filesystem.Options, stderr io.Writer) int {
	fsys, dir, closer, err := openTarget(ctx, cfg.Paths[0], opts)
	if err != nil {
		fmt.Fprintf(stderr, "dirlist: %v\n", err)
		return exitListing
	}
	defer closer()

	model := tui.NewAppModel(fsys, listing.NewGlobFilter(cfg.Pattern), browseRoot(fsys, dir))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitListing
	}

	return exitOK
}

// browseRoot makes a local starting directory absolute so the browser can
// climb all the way to "/".
func browseRoot(fsys filesystem.FileSystem, dir string) string {
	if _, ok := fsys.(*filesystem.RealFileSystem); !ok {
		return dir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		logger.Warn("Cannot resolve %s: %v", dir, err)
		return dir
	}

	return abs
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// listPath lists one path and reports whether it could be listed.
func listPath(ctx context.Context, raw string, cfg *config.Config, opts filesystem.Options, stdout, stderr io.Writer) bool {
	fsys, dir, closer, err := openTarget(ctx, raw, opts)
	if err != nil {
		fmt.Fprintf(stderr, "dirlist: %v\n", err)
		return false
	}
	defer closer()

	result := listing.NewLister(fsys, listing.NewGlobFilter(cfg.Pattern)).List(dir)
	result.Dir = raw

	err = listing.Render(stdout, result, listing.RenderOptions{
		Long:    cfg.Long,
		Summary: cfg.Summary,
		Header:  len(cfg.Paths) > 1,
	})
	if err != nil {
		fmt.Fprintf(stderr, "dirlist: %v\n", err)
		return false
	}

	return result.Err == nil
}

func openTarget(ctx context.Context, raw string, opts filesystem.Options) (filesystem.FileSystem, string, func(), error) {
	target, err := filesystem.ParseTarget(raw)
	if err != nil {
		return nil, "", nil, fmt.Errorf("invalid path %q: %w", raw, err)
	}

	fsys, dir, closer, err := filesystem.OpenFileSystem(ctx, target, opts)
	if err != nil {
		return nil, "", nil, fmt.Errorf("cannot reach %s: %w", target, err)
	}

	return fsys, dir, closer, nil
}
