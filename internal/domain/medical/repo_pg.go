package medical

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository { return &recordRepoPG{pool: pool} }

const recordCols = `id, user_id, blood_type, allergies, chronic_conditions, medications,
	family_history, surgeries, lifestyle, reports, health_metrics, created_at, updated_at`

func (r *recordRepoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.BloodType, &rec.Allergies, &rec.ChronicConditions,
		&rec.Medications, &rec.FamilyHistory, &rec.Surgeries, &rec.Lifestyle,
		&rec.Reports, &rec.HealthMetrics, &rec.CreatedAt, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepoPG) GetByUserID(ctx context.Context, userID string) (*MedicalRecord, error) {
	return r.scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM medical_record WHERE user_id = $1`, userID))
}

func (r *recordRepoPG) GetOrCreate(ctx context.Context, userID string) (*MedicalRecord, error) {
	def := NewDefaultRecord(userID)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_record (id, user_id, blood_type, lifestyle)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID, def.BloodType, def.Lifestyle)
	if err != nil {
		return nil, fmt.Errorf("create medical record: %w", err)
	}
	return r.GetByUserID(ctx, userID)
}

func (r *recordRepoPG) UpsertProfile(ctx context.Context, rec *MedicalRecord) (*MedicalRecord, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO medical_record (id, user_id, blood_type, allergies, chronic_conditions,
			medications, family_history, surgeries, lifestyle)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			chronic_conditions = EXCLUDED.chronic_conditions,
			medications = EXCLUDED.medications,
			family_history = EXCLUDED.family_history,
			surgeries = EXCLUDED.surgeries,
			lifestyle = EXCLUDED.lifestyle,
			updated_at = NOW()
		RETURNING `+recordCols,
		uuid.New(), rec.UserID, rec.BloodType, rec.Allergies, rec.ChronicConditions,
		rec.Medications, rec.FamilyHistory, rec.Surgeries, rec.Lifestyle)
	return r.scanRecord(row)
}

func (r *recordRepoPG) AppendReading(ctx context.Context, userID string, reading MetricReading) ([]MetricReading, error) {
	payload, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("marshal reading: %w", err)
	}

	// Single-statement append keeps the write atomic at the row level.
	var metrics []MetricReading
	err = r.pool.QueryRow(ctx, `
		UPDATE medical_record
		SET health_metrics = health_metrics || $2::jsonb, updated_at = NOW()
		WHERE user_id = $1
		RETURNING health_metrics`,
		userID, payload).Scan(&metrics)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *recordRepoPG) AppendReport(ctx context.Context, userID string, rep Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_record
		SET reports = reports || $2::jsonb, updated_at = NOW()
		WHERE user_id = $1`,
		userID, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recordRepoPG) DeleteReport(ctx context.Context, userID, reportID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_record
		SET reports = (
			SELECT COALESCE(jsonb_agg(elem), '[]'::jsonb)
			FROM jsonb_array_elements(reports) elem
			WHERE elem->>'id' <> $2
		), updated_at = NOW()
		WHERE user_id = $1
		  AND reports @> jsonb_build_array(jsonb_build_object('id', $2::text))`,
		userID, reportID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
