package medical

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/catalog"
)

// ReadingInput is the raw POST body for a new metric reading. Value is left
// untyped because clients send both JSON numbers and numeric strings.
type ReadingInput struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
	Unit  string      `json:"unit"`
	Date  string      `json:"date"`
}

// ValidationError is the diagnostic payload returned for a rejected reading.
type ValidationError struct {
	Message    string      `json:"message"`
	Received   interface{} `json:"received,omitempty"`
	ValidTypes []string    `json:"validTypes,omitempty"`
}

func (e *ValidationError) Error() string { return e.Message }

// dateFormats lists the accepted reading timestamp layouts.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateReading checks a reading in a fixed order: missing fields, unknown
// metric type, non-numeric value, then (only when strictRange is on) the
// catalog's normal range, and finally the date. The first failing check wins
// and nothing is persisted. A valid input is returned in canonical form.
func ValidateReading(in ReadingInput, strictRange bool) (MetricReading, *ValidationError) {
	var missing []string
	if in.Type == "" {
		missing = append(missing, "type")
	}
	if in.Value == nil || in.Value == "" {
		missing = append(missing, "value")
	}
	if in.Unit == "" {
		missing = append(missing, "unit")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return MetricReading{}, &ValidationError{
			Message:  "Missing required fields: type, value, unit and date are required",
			Received: missing,
		}
	}

	def, ok := catalog.ByID(in.Type)
	if !ok {
		return MetricReading{}, &ValidationError{
			Message:    "Invalid metric type",
			Received:   in.Type,
			ValidTypes: catalog.ValidTypes(),
		}
	}

	value, perr := parseValue(in.Value)
	if perr != nil {
		return MetricReading{}, &ValidationError{
			Message:  "Invalid value: must be a finite number",
			Received: in.Value,
		}
	}

	if strictRange && !def.NormalRange.Contains(value) {
		return MetricReading{}, &ValidationError{
			Message: fmt.Sprintf("Value out of range: %s must be between %v and %v %s",
				def.DisplayName, def.NormalRange.Min, def.NormalRange.Max, def.Unit),
			Received: value,
		}
	}

	date, ok := parseDate(in.Date)
	if !ok {
		return MetricReading{}, &ValidationError{
			Message:  "Invalid date format",
			Received: in.Date,
		}
	}

	return MetricReading{
		Type:  in.Type,
		Value: value,
		Unit:  in.Unit,
		Date:  date,
	}, nil
}

func parseValue(raw interface{}) (float64, error) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, err
		}
		v = parsed
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value is not finite")
	}
	return v, nil
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
