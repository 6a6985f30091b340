package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/config"
	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
	"github.com/hibiken/asynq"
)

// Task types
const (
	TaskTypeCleanDocument = "clean:document"
	TaskTypeCleanupFiles  = "storage:cleanup"
)

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// CleanDocumentPayload identifies an uploaded document to clean
type CleanDocumentPayload struct {
	JobID   string `json:"job_id"`
	Profile string `json:"profile"`
	// OutputFormat is "text" or "jsonl"
	OutputFormat string `json:"output_format,omitempty"`
}

// NewCleanDocumentTask builds a task for p
func NewCleanDocumentTask(p CleanDocumentPayload, maxRetries int) (*asynq.Task, error) {
	if p.JobID == "" {
		return nil, apperrors.BadRequest("clean task requires a job id")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode clean task: %w", err)
	}
	return asynq.NewTask(TaskTypeCleanDocument, payload,
		asynq.MaxRetry(maxRetries),
		asynq.Queue(QueueDefault),
		asynq.TaskID(p.JobID),
	), nil
}

// ParseCleanDocumentPayload decodes the payload of a clean task. Malformed
// payloads are wrapped with asynq.SkipRetry since retrying cannot fix them.
func ParseCleanDocumentPayload(t *asynq.Task) (CleanDocumentPayload, error) {
	var p CleanDocumentPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid clean task payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.JobID == "" {
		return p, fmt.Errorf("clean task payload has no job id: %w", asynq.SkipRetry)
	}
	return p, nil
}

// NewCleanupTask builds a task removing stored files older than maxAge
func NewCleanupTask(maxAge time.Duration) *asynq.Task {
	payload, _ := json.Marshal(map[string]int64{"max_age_seconds": int64(maxAge / time.Second)})
	return asynq.NewTask(TaskTypeCleanupFiles, payload, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}

// ParseCleanupPayload returns the max age carried by a cleanup task
func ParseCleanupPayload(t *asynq.Task) (time.Duration, error) {
	var p struct {
		MaxAgeSeconds int64 `json:"max_age_seconds"`
	}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return 0, fmt.Errorf("invalid cleanup task payload: %v: %w", err, asynq.SkipRetry)
	}
	return time.Duration(p.MaxAgeSeconds) * time.Second, nil
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:         cfg.Addr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}

// AsynqClient wraps the Asynq client for enqueuing tasks
type AsynqClient struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewAsynqClient creates a new Asynq client
func NewAsynqClient(cfg *config.QueueConfig, logger *slog.Logger) *AsynqClient {
	client := asynq.NewClient(redisOpt(cfg))

	logger.Info("asynq client created", slog.String("redis", cfg.Addr()))

	return &AsynqClient{
		client: client,
		logger: logger,
	}
}

// Close closes the Asynq client
func (a *AsynqClient) Close() error {
	return a.client.Close()
}

// EnqueueContext enqueues a task
func (a *AsynqClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	info, err := a.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		a.logger.Error("failed to enqueue task",
			slog.String("task_type", task.Type()),
			slog.Any("error", err),
		)
		return nil, apperrors.QueueError(err)
	}

	a.logger.Debug("task enqueued",
		slog.String("task_id", info.ID),
		slog.String("task_type", task.Type()),
		slog.String("queue", info.Queue),
	)

	return info, nil
}

// EnqueueClean enqueues a clean task for p
func (a *AsynqClient) EnqueueClean(ctx context.Context, p CleanDocumentPayload, maxRetries int) (*asynq.TaskInfo, error) {
	task, err := NewCleanDocumentTask(p, maxRetries)
	if err != nil {
		return nil, err
	}
	return a.EnqueueContext(ctx, task)
}

// AsynqServer wraps the Asynq server for processing tasks
type AsynqServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// RetryDelay backs off exponentially: 2s, 4s, 8s, ... capped at ten minutes
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n > 9 {
		n = 9
	}
	d := time.Duration(1<<uint(n+1)) * time.Second
	if d > 10*time.Minute {
		d = 10 * time.Minute
	}
	return d
}

// NewAsynqServer creates a new Asynq server
func NewAsynqServer(cfg *config.QueueConfig, logger *slog.Logger) *AsynqServer {
	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			StrictPriority: cfg.StrictPriority,
			RetryDelayFunc: RetryDelay,

			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task processing failed",
					slog.String("task_type", task.Type()),
					slog.String("payload", string(task.Payload())),
					slog.Any("error", err),
				)
			}),

			HealthCheckFunc: func(e error) {
				if e != nil {
					logger.Error("health check failed", slog.Any("error", e))
				}
			},
			HealthCheckInterval: 20 * time.Second,
			ShutdownTimeout:     25 * time.Second,
		},
	)

	logger.Info("asynq server created",
		slog.String("redis", cfg.Addr()),
		slog.Int("concurrency", cfg.Concurrency),
	)

	return &AsynqServer{
		server: server,
		mux:    asynq.NewServeMux(),
		logger: logger,
	}
}

// HandleFunc registers a handler function for a task type
func (a *AsynqServer) HandleFunc(pattern string, handler func(context.Context, *asynq.Task) error) {
	a.mux.HandleFunc(pattern, handler)
	a.logger.Debug("handler registered", slog.String("pattern", pattern))
}

// Use adds a middleware to the mux
func (a *AsynqServer) Use(middleware func(asynq.Handler) asynq.Handler) {
	a.mux.Use(middleware)
}

// Start runs the server until Shutdown is called
func (a *AsynqServer) Start() error {
	a.logger.Info("starting asynq server")
	if err := a.server.Run(a.mux); err != nil {
		return fmt.Errorf("failed to run asynq server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (a *AsynqServer) Shutdown() {
	a.logger.Info("shutting down asynq server")
	a.server.Shutdown()
}

// LoggingMiddleware logs the duration and outcome of every task
func LoggingMiddleware(logger *slog.Logger) func(asynq.Handler) asynq.Handler {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			err := next.ProcessTask(ctx, t)
			attrs := []any{
				slog.String("task_type", t.Type()),
				slog.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				logger.Warn("task finished with error", append(attrs, slog.Any("error", err))...)
				return err
			}
			logger.Info("task finished", attrs...)
			return nil
		})
	}
}
