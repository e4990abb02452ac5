package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jask/taxsheet/internal/config"
	"github.com/jask/taxsheet/internal/database"
	"github.com/jask/taxsheet/internal/database/repository"
	"github.com/jask/taxsheet/internal/export"
	"github.com/jask/taxsheet/internal/logging"
	"github.com/jask/taxsheet/internal/report"
	"github.com/jask/taxsheet/internal/service"
)

var (
	cfg       config.Config
	logger    *log.Logger
	logCloser io.Closer
)

func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	root := &cobra.Command{
		Use:           "taxsheet",
		Short:         "Collect income tax return data and export it as a PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			lg, closer, err := logging.OpenFile(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				return err
			}
			logger, logCloser = lg, closer
			logger.Debug("config loaded", "path", config.Path(), "command", cmd.Name())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context())
		},
	}

	root.AddCommand(runCmd(), historyCmd(), renderCmd(), deleteCmd(), configCmd(), seedCmd())
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		if logger != nil {
			logger.Error("command failed", "err", err)
		}
	}
	if logCloser != nil {
		if cerr := logCloser.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close log: %w", cerr)
		}
		logCloser = nil
	}
	return err
}

// newExportService wires the export service from config. The returned
// close func releases the archive database.
func newExportService() (*service.ExportService, func() error, error) {
	svc := &service.ExportService{
		Dir: cfg.Export.Dir,
		Report: report.Options{
			CurrencySymbol: cfg.UI.CurrencySymbol,
			Locale:         cfg.UI.Locale,
		},
		PDF: export.PDFOptions{
			PracticeName: cfg.Practice.Name,
			TaxYearEnd:   cfg.Practice.TaxYearEnd,
			Creator:      "taxsheet",
		},
		Log: logger,
	}
	if !cfg.Archive.Enabled {
		return svc, func() error { return nil }, nil
	}
	db, err := openArchive(cfg.Archive.Path)
	if err != nil {
		return nil, nil, err
	}
	svc.Submissions = repository.NewSubmissionRepo(db)
	return svc, db.Close, nil
}

func openArchive(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir archive dir: %w", err)
	}
	return database.OpenAndMigrate(path)
}
