package medical

import (
	"time"

	"github.com/google/uuid"
)

// MetricReading is one health metric observation embedded in a medical
// record. The list is append-only; readings are never edited in place.
type MetricReading struct {
	Type  string    `json:"type"`
	Value float64   `json:"value"`
	Unit  string    `json:"unit"`
	Date  time.Time `json:"date"`
}

// Report is the metadata of an uploaded report document. The file content
// lives in the blob store under the same ID.
type Report struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Lifestyle captures the self-reported lifestyle profile.
type Lifestyle struct {
	Smoking  string `json:"smoking"`
	Alcohol  string `json:"alcohol"`
	Exercise string `json:"exercise"`
	Diet     string `json:"diet"`
}

// MedicalRecord is the single per-user health document. It is created lazily
// on first write with the baseline defaults below.
type MedicalRecord struct {
	ID                uuid.UUID       `json:"id"`
	UserID            string          `json:"userId"`
	BloodType         string          `json:"bloodType"`
	Allergies         []string        `json:"allergies"`
	ChronicConditions []string        `json:"chronicConditions"`
	Medications       []string        `json:"medications"`
	FamilyHistory     []string        `json:"familyHistory"`
	Surgeries         []string        `json:"surgeries"`
	Lifestyle         Lifestyle       `json:"lifestyle"`
	Reports           []Report        `json:"reports"`
	HealthMetrics     []MetricReading `json:"healthMetrics"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Baseline defaults for a lazily created record.
const (
	DefaultBloodType = "O+"
	DefaultSmoking   = "never"
	DefaultAlcohol   = "none"
	DefaultExercise  = "moderate"
	DefaultDiet      = "regular"
)

// NewDefaultRecord returns an unpersisted record with baseline defaults for
// the given user.
func NewDefaultRecord(userID string) *MedicalRecord {
	return &MedicalRecord{
		UserID:            userID,
		BloodType:         DefaultBloodType,
		Allergies:         []string{},
		ChronicConditions: []string{},
		Medications:       []string{},
		FamilyHistory:     []string{},
		Surgeries:         []string{},
		Lifestyle: Lifestyle{
			Smoking:  DefaultSmoking,
			Alcohol:  DefaultAlcohol,
			Exercise: DefaultExercise,
			Diet:     DefaultDiet,
		},
		Reports:       []Report{},
		HealthMetrics: []MetricReading{},
	}
}
