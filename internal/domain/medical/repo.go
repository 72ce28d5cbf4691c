package medical

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user has no medical record (or the record
// lacks the requested report).
var ErrNotFound = errors.New("medical record not found")

// RecordRepository persists per-user medical records.
type RecordRepository interface {
	// GetByUserID returns the user's record or ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*MedicalRecord, error)
	// GetOrCreate returns the user's record, creating one with baseline
	// defaults if absent.
	GetOrCreate(ctx context.Context, userID string) (*MedicalRecord, error)
	// UpsertProfile writes the profile fields of the record, creating it if
	// absent. Readings and reports are left untouched.
	UpsertProfile(ctx context.Context, rec *MedicalRecord) (*MedicalRecord, error)
	// AppendReading atomically appends one reading and returns the full
	// updated list.
	AppendReading(ctx context.Context, userID string, r MetricReading) ([]MetricReading, error)
	// AppendReport appends report metadata to the record.
	AppendReport(ctx context.Context, userID string, rep Report) error
	// DeleteReport removes the report with the given ID. Returns ErrNotFound
	// when the record has no such report.
	DeleteReport(ctx context.Context, userID, reportID string) error
}
