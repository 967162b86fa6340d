package repositories

import (
	"context"
	"database/sql"

	"taskmanager/internal/models"
)

type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id int64) (*models.Label, error)
	GetByName(ctx context.Context, name string) (*models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Label, error)
}

type labelRepository struct {
	db *sql.DB
}

func NewLabelRepository(db *sql.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Create(ctx context.Context, label *models.Label) error {
	const q = `
		INSERT INTO labels (name)
		VALUES ($1)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, q, label.Name).Scan(&label.ID, &label.CreatedAt)
	return translate(err)
}

func (r *labelRepository) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	l := &models.Label{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM labels WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *labelRepository) GetByName(ctx context.Context, name string) (*models.Label, error) {
	l := &models.Label{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM labels WHERE name = $1`, name,
	).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *labelRepository) Update(ctx context.Context, label *models.Label) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE labels SET name=$1 WHERE id=$2`, label.Name, label.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete surfaces ErrInUse while any task_labels row still points at the
// label (task_labels.label_id is ON DELETE RESTRICT).
func (r *labelRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *labelRepository) List(ctx context.Context) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM labels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Label
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}
