package notes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Note) error {
	query :=
		`INSERT INTO notes (id, owner_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query, n.ID, n.OwnerID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return dbx.WrapError(ctx, err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, owner_id, title, content, created_at, updated_at FROM notes
		 WHERE id = $1
		 `

	n := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, dbx.WrapError(ctx, err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	query :=
		`SELECT id, owner_id, title, content, created_at, updated_at FROM notes
		 WHERE owner_id = $1
		 ORDER BY updated_at DESC, created_at DESC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, dbx.WrapError(ctx, err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, dbx.WrapError(ctx, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(ctx, err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, n *models.Note) error {
	query :=
		`UPDATE notes SET title = $3, content = $4, updated_at = $5
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, n.ID, n.OwnerID, n.Title, n.Content, n.UpdatedAt)
	if err != nil {
		return dbx.WrapError(ctx, err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return dbx.WrapError(ctx, err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return dbx.WrapError(ctx, err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
