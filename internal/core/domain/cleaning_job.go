package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a cleaning job
type JobStatus string

const (
	StatusUploaded  JobStatus = "uploaded"
	StatusCleaning  JobStatus = "cleaning"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// CleaningJob tracks one document through the batch cleaning pipeline
type CleaningJob struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OriginalFilename string     `gorm:"type:varchar(500);not null" json:"original_filename"`
	InputPath        string     `gorm:"type:text" json:"input_path"`
	OutputPath       string     `gorm:"type:text" json:"output_path,omitempty"`
	FileHash         string     `gorm:"type:varchar(64);index;not null" json:"file_hash"`
	Profile          string     `gorm:"type:varchar(100);not null;default:'v1'" json:"profile"`
	Overrides        JSONB      `gorm:"type:jsonb" json:"overrides,omitempty"`
	Status           JobStatus  `gorm:"type:varchar(50);not null;default:'uploaded';index" json:"status"`
	TotalSegments    int        `gorm:"default:0" json:"total_segments"`
	CleanedSegments  int        `gorm:"default:0" json:"cleaned_segments"`
	CacheHits        int        `gorm:"default:0" json:"cache_hits"`
	Error            string     `gorm:"type:text" json:"error,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (CleaningJob) TableName() string {
	return "cleaning_jobs"
}

// BeforeCreate GORM hook - called before creating a record
func (j *CleaningJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = StatusUploaded
	}
	return nil
}

// ValidStatuses returns list of valid job statuses
func ValidStatuses() []JobStatus {
	return []JobStatus{
		StatusUploaded,
		StatusCleaning,
		StatusCompleted,
		StatusFailed,
	}
}

// IsValidStatus checks if a status is valid
func IsValidStatus(status JobStatus) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// allowed transitions; cleaning → cleaning covers a worker retry after a crash
var transitions = map[JobStatus][]JobStatus{
	StatusUploaded:  {StatusCleaning, StatusFailed},
	StatusCleaning:  {StatusCleaning, StatusCompleted, StatusFailed},
	StatusFailed:    {StatusCleaning},
	StatusCompleted: {StatusCleaning},
}

// CanTransition reports whether a job may move from one status to another
func CanTransition(from, to JobStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the job to status to, stamping start and completion times
func (j *CleaningJob) Transition(to JobStatus, now time.Time) error {
	if !CanTransition(j.Status, to) {
		return fmt.Errorf("invalid job status transition %s -> %s", j.Status, to)
	}

	switch to {
	case StatusCleaning:
		j.StartedAt = &now
		j.CompletedAt = nil
		j.Error = ""
		j.CleanedSegments = 0
		j.CacheHits = 0
	case StatusCompleted, StatusFailed:
		j.CompletedAt = &now
	}
	j.Status = to
	return nil
}

// Progress returns the fraction of segments cleaned, in [0, 1]
func (j *CleaningJob) Progress() float64 {
	if j.TotalSegments == 0 {
		if j.Status == StatusCompleted {
			return 1
		}
		return 0
	}
	return float64(j.CleanedSegments) / float64(j.TotalSegments)
}

// JSONB is a custom type for JSONB columns
type JSONB map[string]interface{}

// Value implements driver.Valuer
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
	return json.Unmarshal(data, j)
}
