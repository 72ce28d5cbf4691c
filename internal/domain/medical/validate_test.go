package medical

import (
	"testing"
	"time"
)

func TestValidateReading_Valid(t *testing.T) {
	r, verr := ValidateReading(ReadingInput{
		Type: "heart-rate", Value: float64(72), Unit: "BPM", Date: "2024-03-01",
	}, false)
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if r.Type != "heart-rate" || r.Value != 72 || r.Unit != "BPM" {
		t.Errorf("unexpected reading: %+v", r)
	}
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !r.Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, r.Date)
	}
}

func TestValidateReading_AcceptsNumericString(t *testing.T) {
	r, verr := ValidateReading(ReadingInput{
		Type: "blood-glucose", Value: "110.5", Unit: "mg/dL", Date: "2024-03-01T08:30:00Z",
	}, false)
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if r.Value != 110.5 {
		t.Errorf("expected 110.5, got %v", r.Value)
	}
}

func TestValidateReading_MissingFields(t *testing.T) {
	_, verr := ValidateReading(ReadingInput{Type: "heart-rate"}, false)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	missing, ok := verr.Received.([]string)
	if !ok {
		t.Fatalf("expected missing field list, got %T", verr.Received)
	}
	if len(missing) != 3 {
		t.Errorf("expected 3 missing fields, got %v", missing)
	}
}

func TestValidateReading_MissingFieldsWinsOverBadType(t *testing.T) {
	// Order matters: with no value, the missing-fields check fires even
	// though the type is also unknown.
	_, verr := ValidateReading(ReadingInput{Type: "pulse", Unit: "BPM"}, false)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if verr.ValidTypes != nil {
		t.Errorf("expected missing-fields error, got type error: %v", verr)
	}
}

func TestValidateReading_UnknownType(t *testing.T) {
	_, verr := ValidateReading(ReadingInput{
		Type: "pulse", Value: float64(72), Unit: "BPM", Date: "2024-03-01",
	}, false)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if verr.Received != "pulse" {
		t.Errorf("expected received pulse, got %v", verr.Received)
	}
	if len(verr.ValidTypes) != 12 {
		t.Errorf("expected 12 valid types in payload, got %d", len(verr.ValidTypes))
	}
}

func TestValidateReading_NonNumericValue(t *testing.T) {
	for _, bad := range []interface{}{"abc", "NaN", true} {
		_, verr := ValidateReading(ReadingInput{
			Type: "heart-rate", Value: bad, Unit: "BPM", Date: "2024-03-01",
		}, false)
		if verr == nil {
			t.Errorf("value %v: expected validation error", bad)
			continue
		}
		if verr.ValidTypes != nil {
			t.Errorf("value %v: expected value error, got %v", bad, verr)
		}
	}
}

func TestValidateReading_InvalidDate(t *testing.T) {
	_, verr := ValidateReading(ReadingInput{
		Type: "heart-rate", Value: float64(72), Unit: "BPM", Date: "yesterday",
	}, false)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if verr.Received != "yesterday" {
		t.Errorf("expected received yesterday, got %v", verr.Received)
	}
}

func TestValidateReading_StrictRange(t *testing.T) {
	// Out-of-range values pass by default
	if _, verr := ValidateReading(ReadingInput{
		Type: "heart-rate", Value: float64(250), Unit: "BPM", Date: "2024-03-01",
	}, false); verr != nil {
		t.Fatalf("expected out-of-range value to pass without strict mode: %v", verr)
	}

	// and fail in strict mode
	_, verr := ValidateReading(ReadingInput{
		Type: "heart-rate", Value: float64(250), Unit: "BPM", Date: "2024-03-01",
	}, true)
	if verr == nil {
		t.Fatal("expected strict-range validation error")
	}

	// boundary values stay valid in strict mode
	if _, verr := ValidateReading(ReadingInput{
		Type: "heart-rate", Value: float64(100), Unit: "BPM", Date: "2024-03-01",
	}, true); verr != nil {
		t.Fatalf("boundary value should pass strict mode: %v", verr)
	}
}

func TestValidateReading_FutureDatesAccepted(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	if _, verr := ValidateReading(ReadingInput{
		Type: "bmi", Value: float64(22), Unit: "kg/m²", Date: future,
	}, false); verr != nil {
		t.Fatalf("future dates should be accepted: %v", verr)
	}
}
