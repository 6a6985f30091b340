package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/domain"
	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/cleaner"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/cache"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/parsers"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/queue"
	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Service runs uploaded documents through a cleaner profile
type Service struct {
	config Config
	deps   Dependencies
	logger *slog.Logger
}

// NewService creates a new jobs service
func NewService(config Config, deps Dependencies, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if config.DefaultProfile == "" {
		config.DefaultProfile = DefaultConfig().DefaultProfile
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = DefaultConfig().ProgressEvery
	}

	return &Service{
		config: config,
		deps:   deps,
		logger: logger,
	}
}

// Submit stores the document read from r, records a job for it and, when a
// queue is configured, enqueues it for a worker.
func (s *Service) Submit(ctx context.Context, r io.Reader, req SubmitRequest) (*domain.CleaningJob, error) {
	if req.Profile == "" {
		req.Profile = s.config.DefaultProfile
	}
	if err := validateFormat(req.OutputFormat); err != nil {
		return nil, err
	}
	if ext := filepath.Ext(req.Filename); !s.deps.Source.IsSupported(ext) {
		return nil, apperrors.UnsupportedFormat(ext)
	}
	// fail before storing anything when the profile or overrides are bad
	if _, err := cleaner.NewPipeline(req.Profile, req.Overrides); err != nil {
		return nil, err
	}

	id := uuid.New()
	meta, err := s.deps.Files.SaveUpload(ctx, id.String(), req.Filename, r)
	if err != nil {
		return nil, err
	}

	job := &domain.CleaningJob{
		ID:               id,
		OriginalFilename: filepath.Base(req.Filename),
		InputPath:        meta.StoredPath,
		FileHash:         meta.Hash,
		Profile:          req.Profile,
		Overrides:        domain.JSONB(req.Overrides),
		Status:           domain.StatusUploaded,
	}
	if err := s.deps.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.deps.Queue == nil {
		return job, nil
	}
	payload := queue.CleanDocumentPayload{
		JobID:        id.String(),
		Profile:      req.Profile,
		OutputFormat: req.OutputFormat,
	}
	if _, err := s.deps.Queue.EnqueueClean(ctx, payload, s.config.MaxRetries); err != nil {
		if markErr := s.deps.Jobs.MarkFailed(ctx, id, err); markErr != nil {
			s.logger.Error("failed to mark job failed", slog.Any("error", markErr))
		}
		return nil, err
	}

	s.logger.Info("job submitted",
		slog.String("job_id", id.String()),
		slog.String("filename", job.OriginalFilename),
		slog.String("profile", job.Profile))
	return job, nil
}

// Process cleans every segment of a job's document and stores the output.
// Failures are recorded on the job before being returned.
func (s *Service) Process(ctx context.Context, id uuid.UUID, format string) (*Result, error) {
	startTime := time.Now()

	if err := validateFormat(format); err != nil {
		return nil, err
	}
	job, err := s.deps.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.process(ctx, job, format)
	if err != nil {
		if markErr := s.deps.Jobs.MarkFailed(ctx, id, err); markErr != nil {
			s.logger.Error("failed to mark job failed",
				slog.String("job_id", id.String()),
				slog.Any("error", markErr))
		}
		return nil, err
	}

	result.ProcessingMs = time.Since(startTime).Milliseconds()
	s.logger.Info("job processed",
		slog.String("job_id", id.String()),
		slog.Int("segments", result.Segments),
		slog.Int("cache_hits", result.CacheHits),
		slog.Int("repeated", result.Repeated),
		slog.Int64("processing_time_ms", result.ProcessingMs))
	return result, nil
}

func (s *Service) process(ctx context.Context, job *domain.CleaningJob, format string) (*Result, error) {
	pipeline, err := cleaner.NewPipeline(job.Profile, map[string]interface{}(job.Overrides))
	if err != nil {
		return nil, err
	}

	segments, _, err := s.deps.Source.ParseSegments(ctx, job.InputPath)
	if err != nil {
		return nil, err
	}

	if _, err := s.deps.Jobs.StartCleaning(ctx, job.ID, len(segments)); err != nil {
		return nil, err
	}

	cleaned, stats, err := s.cleanSegments(ctx, job.ID, pipeline, segments)
	if err != nil {
		return nil, err
	}

	data, err := Render(format, segments, cleaned)
	if err != nil {
		return nil, err
	}
	outputPath, err := s.deps.Files.SaveCleaned(ctx, job.ID.String(), OutputName(job.OriginalFilename, format), data)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Jobs.MarkCompleted(ctx, job.ID, outputPath, len(segments), stats.cacheHits); err != nil {
		return nil, err
	}

	return &Result{
		JobID:      job.ID,
		Profile:    pipeline.GetVersion(),
		Segments:   len(segments),
		CacheHits:  stats.cacheHits,
		Repeated:   stats.repeated,
		OutputPath: outputPath,
	}, nil
}

type cleanStats struct {
	cacheHits int
	repeated  int
}

// cleanSegments cleans each distinct text once per job. The shared cache is
// consulted for texts not seen earlier in the job; cache failures are logged
// and cleaning continues without it.
func (s *Service) cleanSegments(ctx context.Context, id uuid.UUID, p *cleaner.Pipeline, segments []parsers.Segment) ([]string, cleanStats, error) {
	var stats cleanStats
	fingerprint := cache.Fingerprint(p.GetVersion(), p.GetConfig())
	seen := make(map[string]string)
	out := make([]string, len(segments))

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		if cleaned, ok := seen[seg.Text]; ok {
			out[i] = cleaned
			stats.repeated++
		} else {
			cleaned, hit := s.cleanOne(ctx, p, fingerprint, seg.Text)
			if hit {
				stats.cacheHits++
			}
			seen[seg.Text] = cleaned
			out[i] = cleaned
		}

		if (i+1)%s.config.ProgressEvery == 0 {
			if err := s.deps.Jobs.UpdateProgress(ctx, id, i+1, stats.cacheHits); err != nil {
				s.logger.Warn("failed to record progress",
					slog.String("job_id", id.String()),
					slog.Any("error", err))
			}
		}
	}
	return out, stats, nil
}

func (s *Service) cleanOne(ctx context.Context, p *cleaner.Pipeline, fingerprint, text string) (string, bool) {
	if s.deps.Cache == nil || text == "" {
		return p.CleanText(text), false
	}

	cleaned, ok, err := s.deps.Cache.Get(ctx, fingerprint, text)
	if err != nil {
		s.logger.Warn("cache lookup failed", slog.Any("error", err))
	}
	if ok {
		return cleaned, true
	}

	cleaned = p.CleanText(text)
	if err := s.deps.Cache.Put(ctx, fingerprint, text, cleaned); err != nil {
		s.logger.Warn("cache store failed", slog.Any("error", err))
	}
	return cleaned, false
}

// HandleCleanTask is the asynq handler for queue.TaskTypeCleanDocument
func (s *Service) HandleCleanTask(ctx context.Context, t *asynq.Task) error {
	p, err := queue.ParseCleanDocumentPayload(t)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(p.JobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %v: %w", p.JobID, err, asynq.SkipRetry)
	}

	_, err = s.Process(ctx, id, p.OutputFormat)
	if err == nil {
		return nil
	}
	// retrying cannot fix a missing job or a bad profile or document
	for _, code := range []apperrors.ErrorCode{
		apperrors.ErrCodeJobNotFound,
		apperrors.ErrCodeUnknownProfile,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeUnsupportedFormat,
		apperrors.ErrCodeFileParseError,
		apperrors.ErrCodeFileTooLarge,
		apperrors.ErrCodeBadRequest,
	} {
		if apperrors.IsCode(err, code) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}
	return err
}

// OutputName derives the cleaned output file name from the input name
func OutputName(filename, format string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if format == FormatJSONL {
		return base + ".cleaned.jsonl"
	}
	return base + ".cleaned.txt"
}

func validateFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSONL:
		return nil
	}
	return apperrors.BadRequest(fmt.Sprintf("unknown output format %q", format))
}

// Render writes one cleaned segment per line, as plain text or JSON. cleaned
// holds the cleaned text of segments[i] at index i.
func Render(format string, segments []parsers.Segment, cleaned []string) ([]byte, error) {
	var buf bytes.Buffer
	if format == FormatJSONL {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		for i, seg := range segments {
			if err := enc.Encode(CleanedSegment{Index: seg.Index, Field: seg.Field, Text: seg.Text, Cleaned: cleaned[i]}); err != nil {
				return nil, apperrors.InternalWrap(err, "failed to encode cleaned segment")
			}
		}
		return buf.Bytes(), nil
	}

	for _, c := range cleaned {
		buf.WriteString(c)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
