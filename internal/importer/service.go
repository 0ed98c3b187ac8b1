package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trosone/tros-backend/pkg/csvkit"
	"github.com/trosone/tros-backend/pkg/db/models"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/multierr"
)

// DefaultBatchSize matches the import chunking used across bulk writes.
const DefaultBatchSize = 500

type jobRepository interface {
	Create(ctx context.Context, job *models.ImportJob) error
}

// ExportResult carries a rendered CSV document and its download filename.
type ExportResult struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ImportResult summarises one import run.
type ImportResult struct {
	JobID        uuid.UUID `json:"job_id"`
	Collection   string    `json:"collection"`
	TotalRows    int       `json:"total_rows"`
	ImportedRows int       `json:"imported_rows"`
	SkippedRows  []int64   `json:"skipped_rows"`
	Batches      int       `json:"batches"`
	FailedBatch  *int      `json:"failed_batch,omitempty"`
}

// Service runs CSV export and import for the registered collections.
type Service interface {
	Export(ctx context.Context, collection string) (*ExportResult, error)
	Import(ctx context.Context, collection, content string) (*ImportResult, error)
}

type service struct {
	collections map[string]Collection
	jobs        jobRepository
	metrics     *metrics.ImportMetrics
	logg        *logger.Logger
	batchSize   int
	now         func() time.Time
}

// NewService registers the given collections under their names.
func NewService(jobs jobRepository, imetrics *metrics.ImportMetrics, logg *logger.Logger, batchSize int, collections ...Collection) (Service, error) {
	if jobs == nil {
		return nil, fmt.Errorf("import job repository required")
	}
	if imetrics == nil {
		return nil, fmt.Errorf("import metrics required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	registry := make(map[string]Collection, len(collections))
	for _, c := range collections {
		registry[c.Name()] = c
	}
	return &service{
		collections: registry,
		jobs:        jobs,
		metrics:     imetrics,
		logg:        logg,
		batchSize:   batchSize,
		now:         time.Now,
	}, nil
}

// Export renders the collection as CSV with a dated filename.
func (s *service) Export(ctx context.Context, collection string) (*ExportResult, error) {
	c, err := s.lookup(collection)
	if err != nil {
		return nil, err
	}
	rows, err := c.ExportRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "export "+collection)
	}
	return &ExportResult{
		Filename: csvkit.Filename(collection, s.now()),
		Content:  c.Encoder().Encode(c.Headers(), rows),
	}, nil
}

// Import decodes the CSV, drops rows without a name, and writes the rest in
// sequential batches. A failing batch stops the run; earlier batches stay
// committed. The job row records the outcome either way.
func (s *service) Import(ctx context.Context, collection, content string) (*ImportResult, error) {
	c, err := s.lookup(collection)
	if err != nil {
		return nil, err
	}

	rows := csvkit.Decode(content)
	valid := make([]csvkit.Row, 0, len(rows))
	skipped := pq.Int64Array{}
	for i, row := range rows {
		if !hasName(row) {
			skipped = append(skipped, int64(i+1))
			continue
		}
		valid = append(valid, row)
	}

	job := &models.ImportJob{
		ID:          uuid.New(),
		Collection:  collection,
		TotalRows:   len(rows),
		SkippedRows: skipped,
	}

	var batchErr error
	for start := 0; start < len(valid); start += s.batchSize {
		end := start + s.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		job.Batches++

		if err := c.CreateBatch(ctx, valid[start:end]); err != nil {
			failed := job.Batches
			job.FailedBatch = &failed
			s.metrics.IncBatch(collection, "error")
			batchErr = multierr.Append(batchErr,
				fmt.Errorf("batch %d (%d rows): %w", failed, end-start, err))
			break
		}
		job.ImportedRows += end - start
		s.metrics.IncBatch(collection, "ok")
	}

	s.metrics.AddRows(collection, "imported", job.ImportedRows)
	s.metrics.AddRows(collection, "skipped", len(skipped))

	if err := s.jobs.Create(ctx, job); err != nil {
		// The data writes already happened; losing the job row is not
		// worth failing the request over.
		s.logg.Warn(ctx, fmt.Sprintf("import job row not recorded: %v", err))
	}

	result := &ImportResult{
		JobID:        job.ID,
		Collection:   collection,
		TotalRows:    job.TotalRows,
		ImportedRows: job.ImportedRows,
		SkippedRows:  job.SkippedRows,
		Batches:      job.Batches,
		FailedBatch:  job.FailedBatch,
	}
	if batchErr != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, batchErr, "import "+collection)
	}
	return result, nil
}

func (s *service) lookup(collection string) (Collection, error) {
	c, ok := s.collections[collection]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown collection %q", collection))
	}
	return c, nil
}

// hasName reports whether the decoded row carries a usable name cell.
// Numeric names survive; only missing and blank cells are dropped.
func hasName(row csvkit.Row) bool {
	switch v := row["name"].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return true
	default:
		return false
	}
}
