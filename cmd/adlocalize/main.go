// Package main provides the CLI entry point for adlocalize-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/adlocalize-go/internal/config"
	"github.com/ukaji3/adlocalize-go/internal/logging"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/drive"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what a run needs besides its settings.
type app struct {
	stdout, stderr io.Writer
	// driveOptions are passed to every drive client.
	driveOptions []drive.Option
}

func newRootCommand(stdout, stderr io.Writer, driveOptions ...drive.Option) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, driveOptions: driveOptions}
	cmd := &cobra.Command{
		Use:   "adlocalize [files...]",
		Short: "Export wording spreadsheets to localization files",
		Long: `adlocalize-go converts CSV or XLSX wording files, or a downloaded
spreadsheet, into iOS, Android, YAML, JSON and TOML localization files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				fmt.Fprintln(a.stderr, err)
				return err
			}
			return a.run(cmd.Context(), cfg)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(a.stderr, "%s\n\n%s", err, cmd.UsageString())
		return err
	})
	config.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(a.stdout, a.stderr, cfg.Debug)
	defer func() { _ = logger.Sync() }()

	files := cfg.Files
	if cfg.DriveKey != "" {
		if len(files) > 0 {
			logger.Warnf("Ignoring %d local files: downloading spreadsheet %s instead", len(files), cfg.DriveKey)
		}
		dir, err := os.MkdirTemp("", "adlocalize-")
		if err != nil {
			logger.Error(err)
			return err
		}
		defer os.RemoveAll(dir)

		opts := append([]drive.Option{drive.WithToken(cfg.Token), drive.WithLogger(logger)}, a.driveOptions...)
		client := drive.NewClient(opts...)
		files, err = client.DownloadAll(ctx, cfg.DriveKey, cfg.Sheets, dir)
		if err != nil {
			if drive.IsRateLimited(err) {
				logger.Errorf("%s, try again later", err)
			} else {
				logger.Error(err)
			}
			return err
		}
	}

	opts := cfg.Options()
	opts.Logger = logger
	report, err := adlocalize.Run(adlocalize.PathSources(files...), opts)
	var exportErr *adlocalize.ExportError
	switch {
	case errors.As(err, &exportErr):
		// Each failure was logged as it happened.
		logger.Errorf("%d of %d platform exports failed", len(exportErr.Failures), countExports(report))
		return err
	case err != nil:
		logger.Error(err)
		return err
	}
	logger.Infof("Done: %d files written", len(report.Files()))
	return nil
}

func countExports(report *adlocalize.Report) int {
	n := 0
	for _, e := range report.Exports {
		n += len(e.Platforms)
	}
	return n
}
