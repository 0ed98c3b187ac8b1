package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trosone/tros-backend/pkg/csvkit"
	"github.com/trosone/tros-backend/pkg/db/models"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/metrics"
)

type stubJobRepo struct {
	jobs []models.ImportJob
}

func (s *stubJobRepo) Create(ctx context.Context, job *models.ImportJob) error {
	s.jobs = append(s.jobs, *job)
	return nil
}

type stubCollection struct {
	name        string
	headers     []string
	exportRows  []csvkit.Row
	batches     [][]csvkit.Row
	failAtBatch int
}

func (s *stubCollection) Name() string             { return s.name }
func (s *stubCollection) Headers() []string        { return s.headers }
func (s *stubCollection) Encoder() *csvkit.Encoder { return csvkit.NewEncoder() }

func (s *stubCollection) ExportRows(ctx context.Context) ([]csvkit.Row, error) {
	return s.exportRows, nil
}

func (s *stubCollection) CreateBatch(ctx context.Context, rows []csvkit.Row) error {
	s.batches = append(s.batches, rows)
	if s.failAtBatch > 0 && len(s.batches) == s.failAtBatch {
		return errors.New("connection reset")
	}
	return nil
}

func newTestService(t *testing.T, jobs *stubJobRepo, batchSize int, collections ...Collection) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "importer-test", Level: logger.ParseLevel("error")})
	svc, err := NewService(jobs, metrics.NewImportMetrics(nil), logg, batchSize, collections...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestExportUsesDatedFilename(t *testing.T) {
	coll := &stubCollection{
		name:    "products",
		headers: []string{"name", "price"},
		exportRows: []csvkit.Row{
			{"name": "Widget", "price": 2.5},
		},
	}
	jobs := &stubJobRepo{}
	svc := newTestService(t, jobs, 0, coll)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, 4, 7, 12, 0, 0, 0, time.UTC)
	}

	got, err := svc.Export(context.Background(), "products")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got.Filename != "products_2026-04-07.csv" {
		t.Fatalf("wrong filename %q", got.Filename)
	}
	if !strings.HasPrefix(got.Content, "name,price\n") {
		t.Fatalf("missing header line: %q", got.Content)
	}
	if !strings.Contains(got.Content, "Widget") {
		t.Fatalf("missing row: %q", got.Content)
	}
}

func TestImportSkipsRowsWithoutName(t *testing.T) {
	coll := &stubCollection{name: "products"}
	jobs := &stubJobRepo{}
	svc := newTestService(t, jobs, 0, coll)

	content := "name,price\nWidget,2.5\n,9.99\nGadget,10\n"
	res, err := svc.Import(context.Background(), "products", content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.TotalRows != 3 || res.ImportedRows != 2 {
		t.Fatalf("expected 3 total 2 imported, got %+v", res)
	}
	if len(res.SkippedRows) != 1 || res.SkippedRows[0] != 2 {
		t.Fatalf("row 2 must be skipped, got %v", res.SkippedRows)
	}
	if len(jobs.jobs) != 1 {
		t.Fatal("a job row must be recorded")
	}
}

func TestImportBatchesSequentiallyAndStopsOnFailure(t *testing.T) {
	coll := &stubCollection{name: "products", failAtBatch: 2}
	jobs := &stubJobRepo{}
	svc := newTestService(t, jobs, 2, coll)

	var b strings.Builder
	b.WriteString("name\n")
	for i := 0; i < 5; i++ {
		b.WriteString("Item\n")
	}

	res, err := svc.Import(context.Background(), "products", b.String())
	if err == nil {
		t.Fatal("expected batch failure")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if res.FailedBatch == nil || *res.FailedBatch != 2 {
		t.Fatalf("expected failed batch 2, got %+v", res)
	}
	if len(coll.batches) != 2 {
		t.Fatalf("third batch must never run, got %d", len(coll.batches))
	}
	if res.ImportedRows != 2 {
		t.Fatalf("first batch stays committed, got %d", res.ImportedRows)
	}
	if len(jobs.jobs) != 1 || jobs.jobs[0].FailedBatch == nil {
		t.Fatal("job row must record the failed batch")
	}
}

func TestImportBatchCount(t *testing.T) {
	coll := &stubCollection{name: "products"}
	jobs := &stubJobRepo{}
	svc := newTestService(t, jobs, 2, coll)

	var b strings.Builder
	b.WriteString("name\n")
	for i := 0; i < 5; i++ {
		b.WriteString("Item\n")
	}

	res, err := svc.Import(context.Background(), "products", b.String())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Batches != 3 {
		t.Fatalf("5 rows in batches of 2 must take 3 batches, got %d", res.Batches)
	}
}

func TestUnknownCollection(t *testing.T) {
	svc := newTestService(t, &stubJobRepo{}, 0)

	_, err := svc.Export(context.Background(), "invoices")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = svc.Import(context.Background(), "invoices", "name\nA\n")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
