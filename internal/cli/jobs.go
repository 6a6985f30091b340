package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/jobs"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/cache"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/database"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/database/repositories"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/parsers"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/queue"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/storage"
	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/profile"
)

// backend is the wired job pipeline plus the resources it holds open
type backend struct {
	service *jobs.Service
	repo    *repositories.JobRepository
	files   *storage.LocalStorage
	queue   *queue.AsynqClient
	closers []func() error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
}

// openBackend connects to PostgreSQL, local storage and, when enabled, the
// Redis result cache. withQueue also opens an asynq client for submissions.
func (a *app) openBackend(withQueue bool) (*backend, error) {
	b := &backend{}

	db, err := database.NewPostgresDB(&a.cfg.Database, a.logger)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, db.Close)
	if err := db.Migrate(); err != nil {
		b.Close()
		return nil, err
	}
	b.repo = repositories.NewJobRepository(db.DB, a.logger)

	b.files, err = storage.NewLocalStorage(&storage.LocalStorageConfig{BasePath: a.cfg.Storage.BasePath}, a.logger)
	if err != nil {
		b.Close()
		return nil, err
	}

	deps := jobs.Dependencies{
		Jobs:   b.repo,
		Files:  b.files,
		Source: parsers.NewParserFactory(a.parserConfig()),
	}

	if a.cfg.Cache.Enabled {
		rc, err := cache.NewRedisCache(&a.cfg.Cache, a.logger)
		if err != nil {
			a.logger.Warn("result cache unavailable, cleaning without it", slog.Any("error", err))
		} else {
			b.closers = append(b.closers, rc.Close)
			deps.Cache = cache.NewResultCache(rc, a.cfg.Cache.TTL, a.logger)
		}
	}

	if withQueue {
		b.queue = queue.NewAsynqClient(&a.cfg.Queue, a.logger)
		b.closers = append(b.closers, b.queue.Close)
		deps.Queue = b.queue
	}

	cfg := jobs.DefaultConfig()
	cfg.DefaultProfile = a.cfg.Cleaner.Profile
	if a.cfg.Queue.MaxRetries > 0 {
		cfg.MaxRetries = a.cfg.Queue.MaxRetries
	}
	b.service = jobs.NewService(cfg, deps, a.logger)
	return b, nil
}

func (a *app) submitCommand() *cobra.Command {
	var (
		format string
		sync   bool
	)

	cmd := &cobra.Command{
		Use:     "submit <file>",
		Aliases: []string{"enqueue"},
		Short:   "Store a document and queue it for cleaning by a worker",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := a.profileFile
			if file == "" {
				file = a.cfg.Cleaner.ProfileFile
			}
			name, overrides, err := profile.Resolve(a.profile, file)
			if err != nil {
				return err
			}

			b, err := a.openBackend(!sync)
			if err != nil {
				return err
			}
			defer b.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			job, err := b.service.Submit(ctx, f, jobs.SubmitRequest{
				Filename:     args[0],
				Profile:      name,
				Overrides:    overrides,
				OutputFormat: format,
			})
			if err != nil {
				return err
			}

			if !sync {
				return printJSON(cmd, job)
			}
			result, err := b.service.Process(ctx, job.ID, format)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", jobs.FormatText, "Output format: text or jsonl")
	cmd.Flags().BoolVar(&sync, "sync", false, "Clean in this process instead of queueing")
	return cmd
}

func (a *app) workerCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Process queued cleaning jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openBackend(false)
			if err != nil {
				return err
			}
			defer b.Close()

			qcfg := a.cfg.Queue
			if concurrency > 0 {
				qcfg.Concurrency = concurrency
			}
			srv := queue.NewAsynqServer(&qcfg, a.logger)
			srv.Use(queue.LoggingMiddleware(a.logger))
			srv.HandleFunc(queue.TaskTypeCleanDocument, b.service.HandleCleanTask)
			srv.HandleFunc(queue.TaskTypeCleanupFiles, cleanupHandler(b.files))

			// Run blocks until SIGINT or SIGTERM
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Concurrent jobs (default from WORKER_CONCURRENCY)")
	return cmd
}

func cleanupHandler(files *storage.LocalStorage) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		age, err := queue.ParseCleanupPayload(t)
		if err != nil {
			return err
		}
		return files.CleanupOldFiles(ctx, age)
	}
}

func (a *app) cleanupCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Queue removal of stored uploads and outputs older than --older-than",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := queue.NewAsynqClient(&a.cfg.Queue, a.logger)
			defer client.Close()

			info, err := client.EnqueueContext(cmd.Context(), queue.NewCleanupTask(olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s on %s\n", info.ID, info.Queue)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Minimum age of files to remove")
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the state of a cleaning job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid job id %q: %w", args[0], err)
			}

			db, err := database.NewPostgresDB(&a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			job, err := repositories.NewJobRepository(db.DB, a.logger).GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, job)
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
