package postgres

import (
	"context"
	"fmt"

	"github.com/lending/recovery-service/internal/domain"
)

// ContactRepository stores contact-form leads. Lead capture is unrelated
// to risk scoring; this repository only receives already-validated leads.
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a contact repository.
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Save persists one lead.
func (r *ContactRepository) Save(ctx context.Context, lead *domain.ContactLead) error {
	query := `
		INSERT INTO contact_leads (
			id, full_name, email, organization, phone, subject, message, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.pool.Exec(ctx, query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Organization,
		lead.Phone,
		string(lead.Subject),
		lead.Message,
		lead.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting contact lead: %w", err)
	}

	return nil
}
