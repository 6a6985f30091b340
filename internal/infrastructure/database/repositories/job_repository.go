package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/domain"
	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobRepository persists cleaning jobs using GORM
type JobRepository struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewJobRepository creates a new repository instance
func NewJobRepository(db *gorm.DB, logger *slog.Logger) *JobRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &JobRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new job in the uploaded state
func (r *JobRepository) Create(ctx context.Context, job *domain.CleaningJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		r.logger.Error("failed to create job",
			slog.String("filename", job.OriginalFilename),
			slog.Any("error", err))
		return apperrors.DatabaseError(err)
	}

	r.logger.Info("job created",
		slog.String("job_id", job.ID.String()),
		slog.String("profile", job.Profile))
	return nil
}

// GetByID loads a job, returning JOB_NOT_FOUND when it does not exist
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CleaningJob, error) {
	var job domain.CleaningJob
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.JobNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &job, nil
}

// StartCleaning moves a job into the cleaning state and records its segment count
func (r *JobRepository) StartCleaning(ctx context.Context, id uuid.UUID, totalSegments int) (*domain.CleaningJob, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := job.Transition(domain.StatusCleaning, r.now()); err != nil {
		return nil, apperrors.Conflict(err.Error())
	}
	job.TotalSegments = totalSegments

	if err := r.save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateProgress stores the running segment and cache hit counters
func (r *JobRepository) UpdateProgress(ctx context.Context, id uuid.UUID, cleaned, cacheHits int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CleaningJob{}).
		Where("id = ? AND status = ?", id, domain.StatusCleaning).
		Updates(map[string]interface{}{
			"cleaned_segments": cleaned,
			"cache_hits":       cacheHits,
		})
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.JobNotFound(id.String())
	}
	return nil
}

// MarkCompleted finishes a job with the path of its cleaned output
func (r *JobRepository) MarkCompleted(ctx context.Context, id uuid.UUID, outputPath string, cleaned, cacheHits int) error {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := job.Transition(domain.StatusCompleted, r.now()); err != nil {
		return apperrors.Conflict(err.Error())
	}
	job.OutputPath = outputPath
	job.CleanedSegments = cleaned
	job.CacheHits = cacheHits

	if err := r.save(ctx, job); err != nil {
		return err
	}
	r.logger.Info("job completed",
		slog.String("job_id", id.String()),
		slog.Int("segments", cleaned),
		slog.Int("cache_hits", cacheHits))
	return nil
}

// MarkFailed records cause on the job
func (r *JobRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := job.Transition(domain.StatusFailed, r.now()); err != nil {
		return apperrors.Conflict(err.Error())
	}
	if cause != nil {
		job.Error = cause.Error()
	}

	if err := r.save(ctx, job); err != nil {
		return err
	}
	r.logger.Warn("job failed",
		slog.String("job_id", id.String()),
		slog.String("error", job.Error))
	return nil
}

// List returns the most recent jobs, optionally filtered by status
func (r *JobRepository) List(ctx context.Context, status domain.JobStatus, limit int) ([]domain.CleaningJob, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", status))
	}
	if limit <= 0 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []domain.CleaningJob
	if err := q.Find(&jobs).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

// FindCompleted returns the latest completed job for the same file and profile, if any
func (r *JobRepository) FindCompleted(ctx context.Context, fileHash, profile string) (*domain.CleaningJob, error) {
	var job domain.CleaningJob
	err := r.db.WithContext(ctx).
		Where("file_hash = ? AND profile = ? AND status = ?", fileHash, profile, domain.StatusCompleted).
		Order("completed_at DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &job, nil
}

// Delete removes a job record
func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.CleaningJob{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.JobNotFound(id.String())
	}
	return nil
}

func (r *JobRepository) save(ctx context.Context, job *domain.CleaningJob) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		r.logger.Error("failed to save job",
			slog.String("job_id", job.ID.String()),
			slog.Any("error", err))
		return apperrors.DatabaseError(err)
	}
	return nil
}
