package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lending/recovery-service/internal/domain"
)

// ErrAssessmentNotFound is returned when no record exists for an ID.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepository stores assembled borrower records.
type AssessmentRepository struct {
	db *DB
}

// NewAssessmentRepository creates an assessment repository.
func NewAssessmentRepository(db *DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Save persists one assembled record. The record body is stored as JSONB;
// the indexed columns cover what recovery-team views filter on.
func (r *AssessmentRepository) Save(ctx context.Context, record *domain.BorrowerRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	query := `
		INSERT INTO assessments (
			id, borrower_name, loan_type, risk_probability, risk_category,
			days_past_due, record, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.pool.Exec(ctx, query,
		record.Assessment.ID,
		record.Profile.FullName(),
		record.Profile.LoanType,
		record.Assessment.RiskProbability,
		string(record.Assessment.RiskCategory),
		record.Profile.DaysPastDue,
		body,
		record.Assessment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}

	return nil
}

// GetByID fetches one stored record.
func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowerRecord, error) {
	query := `SELECT record FROM assessments WHERE id = $1`

	var body []byte
	err := r.db.pool.QueryRow(ctx, query, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying assessment: %w", err)
	}

	var record domain.BorrowerRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	return &record, nil
}

// ListRecent returns the newest records, most recent first, for the
// recovery-team dashboard.
func (r *AssessmentRepository) ListRecent(ctx context.Context, limit int) ([]*domain.BorrowerRecord, error) {
	query := `SELECT record FROM assessments ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var records []*domain.BorrowerRecord
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		var record domain.BorrowerRecord
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// CountByCategory returns how many assessments landed in each risk
// category since the given time.
func (r *AssessmentRepository) CountByCategory(ctx context.Context, since time.Time) (map[domain.RiskCategory]int, error) {
	query := `
		SELECT risk_category, COUNT(*)
		FROM assessments
		WHERE created_at >= $1
		GROUP BY risk_category`

	rows, err := r.db.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("counting assessments: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.RiskCategory]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[domain.RiskCategory(category)] = count
	}

	return counts, rows.Err()
}
