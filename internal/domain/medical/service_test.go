package medical

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/timeline"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/platform/blobstore"
)

// mockRecordRepo is an in-memory RecordRepository for service tests.
type mockRecordRepo struct {
	records map[string]*MedicalRecord
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]*MedicalRecord)}
}

func (m *mockRecordRepo) GetByUserID(_ context.Context, userID string) (*MedicalRecord, error) {
	rec, ok := m.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (m *mockRecordRepo) GetOrCreate(_ context.Context, userID string) (*MedicalRecord, error) {
	if rec, ok := m.records[userID]; ok {
		return rec, nil
	}
	rec := NewDefaultRecord(userID)
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	m.records[userID] = rec
	return rec, nil
}

func (m *mockRecordRepo) UpsertProfile(_ context.Context, rec *MedicalRecord) (*MedicalRecord, error) {
	existing, ok := m.records[rec.UserID]
	if !ok {
		rec.ID = uuid.New()
		rec.Reports = []Report{}
		rec.HealthMetrics = []MetricReading{}
		m.records[rec.UserID] = rec
		return rec, nil
	}
	existing.BloodType = rec.BloodType
	existing.Allergies = rec.Allergies
	existing.ChronicConditions = rec.ChronicConditions
	existing.Medications = rec.Medications
	existing.FamilyHistory = rec.FamilyHistory
	existing.Surgeries = rec.Surgeries
	existing.Lifestyle = rec.Lifestyle
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (m *mockRecordRepo) AppendReading(_ context.Context, userID string, r MetricReading) ([]MetricReading, error) {
	rec, ok := m.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	rec.HealthMetrics = append(rec.HealthMetrics, r)
	rec.UpdatedAt = time.Now()
	return rec.HealthMetrics, nil
}

func (m *mockRecordRepo) AppendReport(_ context.Context, userID string, rep Report) error {
	rec, ok := m.records[userID]
	if !ok {
		return ErrNotFound
	}
	rec.Reports = append(rec.Reports, rep)
	return nil
}

func (m *mockRecordRepo) DeleteReport(_ context.Context, userID, reportID string) error {
	rec, ok := m.records[userID]
	if !ok {
		return ErrNotFound
	}
	for i, rep := range rec.Reports {
		if rep.ID == reportID {
			rec.Reports = append(rec.Reports[:i], rec.Reports[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestService() (*Service, *mockRecordRepo) {
	repo := newMockRecordRepo()
	return NewService(repo, blobstore.NewInMemoryBlobStore(), false), repo
}

func validInput(metricType string, value float64, date string) ReadingInput {
	return ReadingInput{Type: metricType, Value: value, Unit: "u", Date: date}
}

func TestAddReading_CreatesRecordAndReturnsFullList(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	metrics, version, err := svc.AddReading(ctx, "user-1", validInput("heart-rate", 72, "2024-03-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metrics) != 1 || version != 1 {
		t.Fatalf("expected 1 reading and version 1, got %d/%d", len(metrics), version)
	}

	rec := repo.records["user-1"]
	if rec == nil {
		t.Fatal("expected record to be created lazily")
	}
	if rec.BloodType != DefaultBloodType {
		t.Errorf("expected default blood type %q, got %q", DefaultBloodType, rec.BloodType)
	}
	if rec.Lifestyle.Exercise != DefaultExercise {
		t.Errorf("expected default exercise %q, got %q", DefaultExercise, rec.Lifestyle.Exercise)
	}
}

func TestAddReading_VersionGrowsWithEachAppend(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		metrics, version, err := svc.AddReading(ctx, "user-1", validInput("heart-rate", float64(70+i), "2024-03-01"))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if version != i || len(metrics) != i {
			t.Fatalf("append %d: expected version %d, got %d (%d readings)", i, i, version, len(metrics))
		}
	}
}

func TestAddReading_RejectedInputDoesNotTouchStore(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, _, err := svc.AddReading(ctx, "user-1", ReadingInput{Type: "pulse", Value: float64(72), Unit: "u", Date: "2024-03-01"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := repo.records["user-1"]; ok {
		t.Error("rejected input must not create a record")
	}
}

func TestGetReadings_NoRecordIsEmptyList(t *testing.T) {
	svc, _ := newTestService()
	metrics, err := svc.GetReadings(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics == nil || len(metrics) != 0 {
		t.Errorf("expected empty list, got %v", metrics)
	}
}

func TestGetRecord_NoRecordReturnsDefaults(t *testing.T) {
	svc, repo := newTestService()
	rec, err := svc.GetRecord(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.BloodType != DefaultBloodType {
		t.Errorf("expected default blood type, got %q", rec.BloodType)
	}
	if _, ok := repo.records["nobody"]; ok {
		t.Error("reads must not create records")
	}
}

func TestUpdateRecord_FillsLifestyleDefaults(t *testing.T) {
	svc, _ := newTestService()
	rec, err := svc.UpdateRecord(context.Background(), "user-1", &MedicalRecord{
		BloodType: "A+",
		Allergies: []string{"penicillin"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.BloodType != "A+" {
		t.Errorf("expected A+, got %q", rec.BloodType)
	}
	if rec.Lifestyle.Smoking != DefaultSmoking || rec.Lifestyle.Diet != DefaultDiet {
		t.Errorf("expected lifestyle defaults, got %+v", rec.Lifestyle)
	}
}

func TestSummary_CoversEveryMetricEvenWithoutData(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.AddReading(ctx, "user-1", validInput("heart-rate", 70, "2024-03-01")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.AddReading(ctx, "user-1", validInput("heart-rate", 80, "2024-03-02")); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Summary(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary) != 12 {
		t.Fatalf("expected 12 metric summaries, got %d", len(summary))
	}

	var hr, bmi *MetricSummary
	for i := range summary {
		switch summary[i].Definition.ID {
		case "heart-rate":
			hr = &summary[i]
		case "bmi":
			bmi = &summary[i]
		}
	}
	if hr == nil || bmi == nil {
		t.Fatal("expected heart-rate and bmi summaries")
	}

	if len(hr.Series) != 2 {
		t.Errorf("expected 2 heart-rate points, got %d", len(hr.Series))
	}
	if hr.Insights.Trend != timeline.TrendIncreasing {
		t.Errorf("expected increasing trend, got %q", hr.Insights.Trend)
	}

	if len(bmi.Series) != 0 {
		t.Errorf("expected empty bmi series, got %d points", len(bmi.Series))
	}
	if bmi.Insights.Trend != timeline.TrendNoData {
		t.Errorf("expected no data trend for bmi, got %q", bmi.Insights.Trend)
	}
	if !bmi.Insights.IsNormal {
		t.Error("empty series should be vacuously normal")
	}
}

func TestUploadReport_RoundTrip(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	rep, err := svc.UploadReport(ctx, "user-1", "CBC panel", "lab", "cbc.pdf", "application/pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rep.Name != "CBC panel" || rep.Category != "lab" {
		t.Errorf("unexpected report: %+v", rep)
	}

	reports, err := svc.ListReports(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != rep.ID {
		t.Fatalf("unexpected report list: %+v", reports)
	}

	rc, meta, err := svc.DownloadReport(ctx, "user-1", rep.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	rc.Close()
	if meta.ContentType != "application/pdf" {
		t.Errorf("unexpected content type %q", meta.ContentType)
	}

	if _, ok := repo.records["user-1"]; !ok {
		t.Error("expected record created by upload")
	}
}

func TestListReports_FilterByCategory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UploadReport(ctx, "user-1", "CBC", "lab", "cbc.pdf", "application/pdf", strings.NewReader("a")); err != nil {
		t.Fatalf("upload lab: %v", err)
	}
	if _, err := svc.UploadReport(ctx, "user-1", "X-ray", "imaging", "xray.png", "image/png", strings.NewReader("b")); err != nil {
		t.Fatalf("upload imaging: %v", err)
	}

	labs, err := svc.ListReports(ctx, "user-1", "lab")
	if err != nil {
		t.Fatalf("list lab: %v", err)
	}
	if len(labs) != 1 || labs[0].Name != "CBC" {
		t.Fatalf("unexpected lab listing: %+v", labs)
	}

	all, err := svc.ListReports(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 reports without filter, got %d", len(all))
	}

	none, err := svc.ListReports(ctx, "user-1", "prescription")
	if err != nil {
		t.Fatalf("list prescription: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty list for unused category, got %+v", none)
	}
}

func TestDownloadReport_OtherUsersCannotAccess(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rep, err := svc.UploadReport(ctx, "user-1", "", "lab", "cbc.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, _, err := svc.DownloadReport(ctx, "user-2", rep.ID); err != blobstore.ErrBlobNotFound {
		t.Fatalf("expected ErrBlobNotFound for foreign report, got %v", err)
	}
}

func TestDeleteReport(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rep, err := svc.UploadReport(ctx, "user-1", "", "lab", "cbc.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.DeleteReport(ctx, "user-1", rep.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reports, _ := svc.ListReports(ctx, "user-1", "")
	if len(reports) != 0 {
		t.Errorf("expected no reports after delete, got %d", len(reports))
	}

	if err := svc.DeleteReport(ctx, "user-1", rep.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
