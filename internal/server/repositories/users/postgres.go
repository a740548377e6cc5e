package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
	"github.com/google/uuid"
)

const emailConstraint = "users_email_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = timex.StorageTime(time.Now())

	query :=
		`INSERT INTO users (id, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, emailConstraint) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, dbx.WrapError(ctx, err)
	}

	return &u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE email = $1
		 LIMIT 2
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, dbx.WrapError(ctx, err)
	}
	defer rows.Close()

	var found []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, dbx.WrapError(ctx, err)
		}
		found = append(found, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(ctx, err)
	}

	switch len(found) {
	case 0:
		return nil, common.ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %d users with email", common.ErrInconsistentState, len(found))
	}
}
