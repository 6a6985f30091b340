package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/logger"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDocumentTask_RoundTrip(t *testing.T) {
	in := CleanDocumentPayload{JobID: "7d3c", Profile: "v1-strict", OutputFormat: "jsonl"}

	task, err := NewCleanDocumentTask(in, 3)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeCleanDocument, task.Type())

	out, err := ParseCleanDocumentPayload(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCleanDocumentTask_Invalid(t *testing.T) {
	_, err := NewCleanDocumentTask(CleanDocumentPayload{Profile: "v1"}, 3)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{"},
		{"missing job id", `{"profile":"v1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCleanDocumentPayload(asynq.NewTask(TaskTypeCleanDocument, []byte(tt.payload)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestCleanupTask(t *testing.T) {
	task := NewCleanupTask(90 * time.Minute)
	assert.Equal(t, TaskTypeCleanupFiles, task.Type())

	age, err := ParseCleanupPayload(task)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, age)
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		n    int
		want time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{3, 16 * time.Second},
		{8, 512 * time.Second},
		{9, 10 * time.Minute},
		{50, 10 * time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RetryDelay(tt.n, nil, nil), "n=%d", tt.n)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	boom := errors.New("boom")
	mw := LoggingMiddleware(logger.Discard())

	ok := mw(asynq.HandlerFunc(func(context.Context, *asynq.Task) error { return nil }))
	fail := mw(asynq.HandlerFunc(func(context.Context, *asynq.Task) error { return boom }))

	task := asynq.NewTask(TaskTypeCleanDocument, nil)
	assert.NoError(t, ok.ProcessTask(context.Background(), task))
	assert.ErrorIs(t, fail.ProcessTask(context.Background(), task), boom)
}
