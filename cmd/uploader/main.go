package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"course-media/internal/config"
	"course-media/internal/uploader"
)

func main() {

	var (
		apiBaseURL string
		retries    int
		verbose    bool
	)

	flag.StringVar(&apiBaseURL, "api", "", "Base URL of the api server (overrides CLIENT_API_BASE_URL)")
	flag.IntVar(&retries, "retries", 0, "Number of extra rounds for files that failed")
	flag.BoolVar(&verbose, "v", false, "Log every session update")
	flag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: uploader [-api URL] [-retries N] [-v] FILE...")
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}

	files, err := collectFiles(paths)
	if err != nil {
		logger.Error("failed to inspect files", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	creds := uploader.NewAPICredentialSource(cfg.APIBaseURL, httpClient)
	tracker := uploader.NewTracker(httpClient, logger)
	scheduler := uploader.NewScheduler(creds, tracker, *cfg, logger)

	scheduler.Run(ctx, files)

	summary, interrupted := drain(ctx, scheduler, verbose)
	for round := 0; round < retries && !interrupted && summary.Failed > 0; round++ {
		fmt.Printf("retrying %d failed upload(s), round %d/%d\n", summary.Failed, round+1, retries)
		scheduler.ResetFailed()
		summary, interrupted = drain(ctx, scheduler, verbose)
	}

	if interrupted {
		fmt.Fprintln(os.Stderr, "\ninterrupted, uploads aborted")
		os.Exit(1)
	}

	fmt.Printf("done: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// drain consumes session updates until the batch reports its summary, or the
// signal context cancels mid-flight.
func drain(ctx context.Context, scheduler *uploader.Scheduler, verbose bool) (uploader.Summary, bool) {
	for {
		select {
		case update := <-scheduler.Updates():
			printUpdate(update, verbose)
		case summary := <-scheduler.Done():
			return summary, false
		case <-ctx.Done():
			return uploader.Summary{}, true
		}
	}
}

func printUpdate(session uploader.Session, verbose bool) {
	switch session.Status {
	case uploader.StatusUploading:
		if session.Progress.TotalBytes > 0 {
			fmt.Printf("\r%s: %.1f%% (%.1f MB/s)",
				session.FileName,
				session.Progress.Percentage,
				session.Progress.ThroughputBytesPerSec/(1<<20))
		}
	case uploader.StatusCompleted:
		fmt.Printf("\r%s: done\n", session.FileName)
	case uploader.StatusError:
		fmt.Printf("\r%s: failed: %s\n", session.FileName, session.Err)
	default:
		if verbose {
			fmt.Printf("%s: %s\n", session.FileName, session.Status)
		}
	}
}

func collectFiles(paths []string) ([]uploader.UploadFile, error) {
	files := make([]uploader.UploadFile, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		localPath := path
		files = append(files, uploader.UploadFile{
			Name:        filepath.Base(path),
			ContentType: contentType,
			Size:        info.Size(),
			Open: func() (io.ReadCloser, error) {
				return os.Open(localPath)
			},
		})
	}
	return files, nil
}
