package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jask/taxsheet/internal/database/repository"
	"github.com/jask/taxsheet/internal/export"
	"github.com/jask/taxsheet/internal/report"
	"github.com/jask/taxsheet/internal/taxform"
)

// ExportService renders snapshots to PDF files and archives them.
// A nil Submissions repo disables archiving.
type ExportService struct {
	Submissions *repository.SubmissionRepo
	Dir         string
	Report      report.Options
	PDF         export.PDFOptions
	Log         *log.Logger
}

type ExportResult struct {
	ID       string
	Path     string
	Archived bool
}

// FileName builds taxsheet-<lastname>-<yyyymmdd-hhmmss>.pdf for snap.
func FileName(snap taxform.Snapshot) string {
	name := slug(snap.State.PersonalInfo.LastName)
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("taxsheet-%s-%s.pdf", name, snap.TakenAt.Format("20060102-150405"))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Export writes the PDF for snap into Dir and archives the snapshot. The
// file is complete on disk before archiving starts; an archive failure is
// returned alongside the written result.
func (s *ExportService) Export(ctx context.Context, snap taxform.Snapshot) (ExportResult, error) {
	rep, err := report.Build(snap, s.Report)
	if err != nil {
		return ExportResult{}, fmt.Errorf("build report: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("mkdir export dir: %w", err)
	}

	res := ExportResult{ID: uuid.NewString(), Path: filepath.Join(s.Dir, FileName(snap))}
	if err := s.writeFile(res.Path, rep); err != nil {
		return ExportResult{}, err
	}
	s.logger().Info("exported pdf", "id", res.ID, "path", res.Path, "sections", snap.Selection.Len())

	if s.Submissions == nil {
		return res, nil
	}
	if err := s.archive(ctx, res, snap); err != nil {
		s.logger().Error("archive submission", "id", res.ID, "err", err)
		return res, err
	}
	res.Archived = true
	return res, nil
}

func (s *ExportService) writeFile(path string, rep report.Report) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".taxsheet-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := export.WritePDF(tmp, rep, s.PDF); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move pdf into place: %w", err)
	}
	return nil
}

func (s *ExportService) archive(ctx context.Context, res ExportResult, snap taxform.Snapshot) error {
	sel, err := json.Marshal(snap.Selection)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	state, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	err = s.Submissions.Insert(ctx, repository.Submission{
		ID:        res.ID,
		Taxpayer:  snap.TaxpayerName(),
		Selection: sel,
		State:     state,
		PDFPath:   res.Path,
		TakenAt:   snap.TakenAt,
	})
	if err != nil {
		return fmt.Errorf("archive submission: %w", err)
	}
	return nil
}

var ErrArchiveDisabled = errors.New("archive disabled")

// Snapshot loads an archived submission.
func (s *ExportService) Snapshot(ctx context.Context, id string) (taxform.Snapshot, error) {
	if s.Submissions == nil {
		return taxform.Snapshot{}, ErrArchiveDisabled
	}
	sub, err := s.Submissions.Get(ctx, id)
	if err != nil {
		return taxform.Snapshot{}, fmt.Errorf("load submission %s: %w", id, err)
	}
	var sel taxform.Selection
	if err := json.Unmarshal(sub.Selection, &sel); err != nil {
		return taxform.Snapshot{}, fmt.Errorf("decode selection: %w", err)
	}
	sel, err = sel.Normalize()
	if err != nil {
		return taxform.Snapshot{}, fmt.Errorf("decode selection: %w", err)
	}
	var state taxform.FormState
	if err := json.Unmarshal(sub.State, &state); err != nil {
		return taxform.Snapshot{}, fmt.Errorf("decode state: %w", err)
	}
	return taxform.NewSnapshot(state, sel, sub.TakenAt.Local()), nil
}

// Render re-renders the archived submission id as a PDF to w.
func (s *ExportService) Render(ctx context.Context, id string, w io.Writer) error {
	snap, err := s.Snapshot(ctx, id)
	if err != nil {
		return err
	}
	rep, err := report.Build(snap, s.Report)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	return export.WritePDF(w, rep, s.PDF)
}

// History lists archived submissions, newest first.
func (s *ExportService) History(ctx context.Context, limit int) ([]repository.Submission, error) {
	if s.Submissions == nil {
		return nil, ErrArchiveDisabled
	}
	return s.Submissions.List(ctx, limit)
}

// Delete removes submission id from the archive. With removeFile set the
// exported PDF goes too; a file that is already gone is not an error.
func (s *ExportService) Delete(ctx context.Context, id string, removeFile bool) (repository.Submission, error) {
	if s.Submissions == nil {
		return repository.Submission{}, ErrArchiveDisabled
	}
	sub, err := s.Submissions.Delete(ctx, id)
	if err != nil {
		return repository.Submission{}, fmt.Errorf("delete submission %s: %w", id, err)
	}
	s.logger().Info("submission deleted", "id", id, "pdf", sub.PDFPath)
	if !removeFile || sub.PDFPath == "" {
		return sub, nil
	}
	if err := os.Remove(sub.PDFPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return sub, fmt.Errorf("remove %s: %w", sub.PDFPath, err)
	}
	return sub, nil
}

func (s *ExportService) logger() *log.Logger {
	if s.Log == nil {
		return log.Default()
	}
	return s.Log
}
