package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/museumguide/backend/internal/models"
)

// adminRepository implements the registered-administrators allow-list over
// the admins table.
type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

// GetByEmail looks up a registered administrator. The lookup is
// case-insensitive: emails are stored lowercased and the argument is
// normalized before the query.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT email
		FROM admins
		WHERE email = ?
		LIMIT 1
	`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&admin.Email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}
