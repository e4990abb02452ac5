package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/taxsheet/internal/database"
	"github.com/jask/taxsheet/internal/database/repository"
	"github.com/jask/taxsheet/internal/export"
	"github.com/jask/taxsheet/internal/logging"
	"github.com/jask/taxsheet/internal/report"
	"github.com/jask/taxsheet/internal/taxform"
)

func newService(t *testing.T, archive bool) *ExportService {
	t.Helper()
	svc := &ExportService{
		Dir:    filepath.Join(t.TempDir(), "out"),
		Report: report.DefaultOptions(),
		PDF:    export.PDFOptions{PracticeName: "FMW Accountants", TaxYearEnd: "30 June 2022"},
		Log:    logging.Discard(),
	}
	if archive {
		db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "archive.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		svc.Submissions = repository.NewSubmissionRepo(db)
	}
	return svc
}

func sampleSnapshot(t *testing.T) taxform.Snapshot {
	t.Helper()
	sel, err := taxform.NewSelection(taxform.BankInterest, taxform.MotorVehicle)
	require.NoError(t, err)
	state := taxform.NewFormState()
	state.PersonalInfo.FirstName = "Jane"
	state.PersonalInfo.LastName = "van der Berg"
	state.Income.BankInterest = []taxform.BankInterestEntry{{BankName: "ANZ", BSB: "013-000", InterestAmount: 12.5}}
	state.Deductions.MotorVehicle.WithLogbook = true
	state.Deductions.MotorVehicle.FuelExpense = 300
	return taxform.NewSnapshot(state, sel, time.Date(2022, 7, 14, 16, 5, 9, 0, time.Local))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot(t)
	require.Equal(t, "taxsheet-van-der-berg-20220714-160509.pdf", FileName(snap))

	snap.State.PersonalInfo.LastName = "  "
	require.Equal(t, "taxsheet-anonymous-20220714-160509.pdf", FileName(snap))

	snap.State.PersonalInfo.LastName = "O'Brien"
	require.Equal(t, "taxsheet-o-brien-20220714-160509.pdf", FileName(snap))
}

func TestExportWritesPDFAndArchives(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t, true)
	snap := sampleSnapshot(t)

	res, err := svc.Export(ctx, snap)
	require.NoError(t, err)
	require.True(t, res.Archived)
	require.NotEmpty(t, res.ID)
	require.Equal(t, filepath.Join(svc.Dir, FileName(snap)), res.Path)

	raw, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	entries, err := os.ReadDir(svc.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, res.ID, history[0].ID)
	require.Equal(t, "Jane van der Berg", history[0].Taxpayer)
}

func TestArchivedSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t, true)
	snap := sampleSnapshot(t)

	res, err := svc.Export(ctx, snap)
	require.NoError(t, err)

	got, err := svc.Snapshot(ctx, res.ID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(snap.State, got.State))
	require.True(t, snap.Selection.Equal(got.Selection))
	require.True(t, snap.TakenAt.Equal(got.TakenAt))

	var buf bytes.Buffer
	require.NoError(t, svc.Render(ctx, res.ID, &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestDeleteRemovesArchiveRowAndFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t, true)

	kept, err := svc.Export(ctx, sampleSnapshot(t))
	require.NoError(t, err)
	_, err = svc.Delete(ctx, kept.ID, false)
	require.NoError(t, err)
	_, err = os.Stat(kept.Path)
	require.NoError(t, err, "file stays without removeFile")

	snap := sampleSnapshot(t)
	snap.State.PersonalInfo.LastName = "Other"
	gone, err := svc.Export(ctx, snap)
	require.NoError(t, err)
	sub, err := svc.Delete(ctx, gone.ID, true)
	require.NoError(t, err)
	require.Equal(t, gone.Path, sub.PDFPath)
	_, err = os.Stat(gone.Path)
	require.ErrorIs(t, err, os.ErrNotExist)

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, history)

	_, err = svc.Delete(ctx, gone.ID, true)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRenderUnknownSubmission(t *testing.T) {
	t.Parallel()

	svc := newService(t, true)
	err := svc.Render(context.Background(), "nope", &bytes.Buffer{})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExportWithoutArchive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t, false)

	res, err := svc.Export(ctx, sampleSnapshot(t))
	require.NoError(t, err)
	require.False(t, res.Archived)
	_, err = os.Stat(res.Path)
	require.NoError(t, err)

	_, err = svc.History(ctx, 0)
	require.ErrorIs(t, err, ErrArchiveDisabled)
}
