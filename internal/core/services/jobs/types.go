package jobs

import (
	"context"
	"io"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/domain"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/parsers"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/queue"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Output formats
const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// JobStore persists job state
type JobStore interface {
	Create(ctx context.Context, job *domain.CleaningJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CleaningJob, error)
	StartCleaning(ctx context.Context, id uuid.UUID, totalSegments int) (*domain.CleaningJob, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, cleaned, cacheHits int) error
	MarkCompleted(ctx context.Context, id uuid.UUID, outputPath string, cleaned, cacheHits int) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error) error
}

// FileStore keeps input documents and cleaned output
type FileStore interface {
	SaveUpload(ctx context.Context, jobID string, filename string, reader io.Reader) (*storage.FileMetadata, error)
	SaveCleaned(ctx context.Context, jobID string, filename string, data []byte) (string, error)
}

// SegmentSource extracts text segments from a stored document
type SegmentSource interface {
	ParseSegments(ctx context.Context, filePath string) ([]parsers.Segment, *parsers.ParseResult, error)
	IsSupported(fileExt string) bool
}

// ResultCache looks up and stores cleaned text across jobs
type ResultCache interface {
	Get(ctx context.Context, profile, text string) (string, bool, error)
	Put(ctx context.Context, profile, text, cleaned string) error
}

// Enqueuer hands jobs to background workers
type Enqueuer interface {
	EnqueueClean(ctx context.Context, p queue.CleanDocumentPayload, maxRetries int) (*asynq.TaskInfo, error)
}

// Dependencies wires a Service. Cache and Queue are optional.
type Dependencies struct {
	Jobs   JobStore
	Files  FileStore
	Source SegmentSource
	Cache  ResultCache
	Queue  Enqueuer
}

// Config for the jobs service
type Config struct {
	DefaultProfile string
	// ProgressEvery is how many segments are cleaned between progress writes
	ProgressEvery int
	MaxRetries    int
}

// DefaultConfig returns default jobs configuration
func DefaultConfig() Config {
	return Config{
		DefaultProfile: "v1",
		ProgressEvery:  500,
		MaxRetries:     3,
	}
}

// SubmitRequest describes a document to clean
type SubmitRequest struct {
	Filename     string
	Profile      string
	Overrides    map[string]interface{}
	OutputFormat string
}

// CleanedSegment is one line of JSONL output
type CleanedSegment struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Text    string `json:"text"`
	Cleaned string `json:"cleaned"`
}

// Result summarizes a processed job
type Result struct {
	JobID        uuid.UUID `json:"job_id"`
	Profile      string    `json:"profile"`
	Segments     int       `json:"segments"`
	CacheHits    int       `json:"cache_hits"`
	Repeated     int       `json:"repeated"`
	OutputPath   string    `json:"output_path"`
	ProcessingMs int64     `json:"processing_ms"`
}
