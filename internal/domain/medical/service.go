package medical

import (
	"context"
	"fmt"
	"io"

	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/catalog"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/timeline"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/platform/blobstore"
)

// MetricSummary joins one catalog definition with the user's series and the
// derived insights for that metric.
type MetricSummary struct {
	Definition catalog.MetricDefinition `json:"definition"`
	Series     []timeline.Point         `json:"series"`
	Insights   timeline.Insights        `json:"insights"`
}

type Service struct {
	records     RecordRepository
	blobs       blobstore.BlobStore
	strictRange bool
}

func NewService(records RecordRepository, blobs blobstore.BlobStore, strictRange bool) *Service {
	return &Service{records: records, blobs: blobs, strictRange: strictRange}
}

// GetReadings returns the user's full readings list. A user with no record
// yet simply has no readings.
func (s *Service) GetReadings(ctx context.Context, userID string) ([]MetricReading, error) {
	rec, err := s.records.GetByUserID(ctx, userID)
	if err == ErrNotFound {
		return []MetricReading{}, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.HealthMetrics == nil {
		return []MetricReading{}, nil
	}
	return rec.HealthMetrics, nil
}

// AddReading validates the input, lazily creates the user's record, appends
// the reading, and returns the entire updated list plus its version (the
// reading count, monotonic under appends). A *ValidationError is returned
// for rejected input; rejected input never touches the store.
func (s *Service) AddReading(ctx context.Context, userID string, in ReadingInput) ([]MetricReading, int, error) {
	reading, verr := ValidateReading(in, s.strictRange)
	if verr != nil {
		return nil, 0, verr
	}

	if _, err := s.records.GetOrCreate(ctx, userID); err != nil {
		return nil, 0, fmt.Errorf("get or create record: %w", err)
	}

	metrics, err := s.records.AppendReading(ctx, userID, reading)
	if err != nil {
		return nil, 0, fmt.Errorf("append reading: %w", err)
	}
	return metrics, len(metrics), nil
}

// GetRecord returns the user's medical record, or an unpersisted default
// record when none exists yet. Reads never create rows.
func (s *Service) GetRecord(ctx context.Context, userID string) (*MedicalRecord, error) {
	rec, err := s.records.GetByUserID(ctx, userID)
	if err == ErrNotFound {
		return NewDefaultRecord(userID), nil
	}
	return rec, err
}

// UpdateRecord upserts the profile fields of the user's record. Empty
// lifestyle fields fall back to the baseline defaults.
func (s *Service) UpdateRecord(ctx context.Context, userID string, rec *MedicalRecord) (*MedicalRecord, error) {
	rec.UserID = userID
	if rec.BloodType == "" {
		rec.BloodType = DefaultBloodType
	}
	if rec.Lifestyle.Smoking == "" {
		rec.Lifestyle.Smoking = DefaultSmoking
	}
	if rec.Lifestyle.Alcohol == "" {
		rec.Lifestyle.Alcohol = DefaultAlcohol
	}
	if rec.Lifestyle.Exercise == "" {
		rec.Lifestyle.Exercise = DefaultExercise
	}
	if rec.Lifestyle.Diet == "" {
		rec.Lifestyle.Diet = DefaultDiet
	}
	if rec.Allergies == nil {
		rec.Allergies = []string{}
	}
	if rec.ChronicConditions == nil {
		rec.ChronicConditions = []string{}
	}
	if rec.Medications == nil {
		rec.Medications = []string{}
	}
	if rec.FamilyHistory == nil {
		rec.FamilyHistory = []string{}
	}
	if rec.Surgeries == nil {
		rec.Surgeries = []string{}
	}
	return s.records.UpsertProfile(ctx, rec)
}

// Summary joins every catalog definition with the user's series and derived
// insights. Metrics the user never recorded appear with an empty series.
func (s *Service) Summary(ctx context.Context, userID string) ([]MetricSummary, error) {
	readings, err := s.GetReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs := catalog.Definitions()
	raw := make([]timeline.Reading, len(readings))
	for i, r := range readings {
		raw[i] = timeline.Reading{Type: r.Type, Value: r.Value, Date: r.Date}
	}
	series := timeline.BuildSeries(catalog.ValidTypes(), raw)

	out := make([]MetricSummary, len(defs))
	for i, def := range defs {
		pts := series[def.ID]
		out[i] = MetricSummary{
			Definition: def,
			Series:     pts,
			Insights:   timeline.Evaluate(pts, def.NormalRange),
		}
	}
	return out, nil
}

// UploadReport stores the file in the blob store and records its metadata on
// the user's record.
func (s *Service) UploadReport(ctx context.Context, userID, name, category, fileName, contentType string, content io.Reader) (*Report, error) {
	meta, err := s.blobs.Upload(ctx, blobstore.BlobMetadata{
		FileName:    fileName,
		ContentType: contentType,
		OwnerID:     userID,
		Category:    category,
	}, content)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = fileName
	}
	rep := Report{
		ID:          meta.ID,
		Name:        name,
		Category:    meta.Category,
		FileName:    meta.FileName,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		UploadedAt:  meta.CreatedAt,
	}

	if _, err := s.records.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("get or create record: %w", err)
	}
	if err := s.records.AppendReport(ctx, userID, rep); err != nil {
		// Don't leave an orphaned blob behind.
		_ = s.blobs.Delete(ctx, meta.ID)
		return nil, fmt.Errorf("append report: %w", err)
	}
	return &rep, nil
}

// ListReports returns the user's report metadata list, optionally narrowed to
// one category.
func (s *Service) ListReports(ctx context.Context, userID, category string) ([]Report, error) {
	rec, err := s.records.GetByUserID(ctx, userID)
	if err == ErrNotFound {
		return []Report{}, nil
	}
	if err != nil {
		return nil, err
	}
	reports := rec.Reports
	if reports == nil {
		reports = []Report{}
	}
	if category == "" {
		return reports, nil
	}
	filtered := []Report{}
	for _, rep := range reports {
		if rep.Category == category {
			filtered = append(filtered, rep)
		}
	}
	return filtered, nil
}

// DownloadReport streams a report's content after checking the caller owns it.
// Reports belonging to another user look identical to missing ones.
func (s *Service) DownloadReport(ctx context.Context, userID, reportID string) (io.ReadCloser, *blobstore.BlobMetadata, error) {
	meta, err := s.blobs.GetMetadata(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if meta.OwnerID != userID {
		return nil, nil, blobstore.ErrBlobNotFound
	}
	return s.blobs.Download(ctx, reportID)
}

// DeleteReport removes the report metadata and its stored file.
func (s *Service) DeleteReport(ctx context.Context, userID, reportID string) error {
	if err := s.records.DeleteReport(ctx, userID, reportID); err != nil {
		return err
	}
	// Metadata removal is the source of truth; a missing blob is not fatal.
	if err := s.blobs.Delete(ctx, reportID); err != nil && err != blobstore.ErrBlobNotFound {
		return err
	}
	return nil
}
