package repositories

import (
	"context"
	"database/sql"

	"taskmanager/internal/models"
)

type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, id int64) (*models.Status, error)
	GetByName(ctx context.Context, name string) (*models.Status, error)
	Update(ctx context.Context, status *models.Status) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Status, error)
}

type statusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	const q = `
		INSERT INTO statuses (name)
		VALUES ($1)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, q, status.Name).Scan(&status.ID, &status.CreatedAt)
	return translate(err)
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*models.Status, error) {
	s := &models.Status{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM statuses WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*models.Status, error) {
	s := &models.Status{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM statuses WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statusRepository) Update(ctx context.Context, status *models.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE statuses SET name=$1 WHERE id=$2`, status.Name, status.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete surfaces ErrInUse when any task still references the status
// (tasks.status_id is ON DELETE RESTRICT).
func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *statusRepository) List(ctx context.Context) ([]models.Status, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Status
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
