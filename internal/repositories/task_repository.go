package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"taskmanager/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `
	t.id, t.name, t.description, t.status_id, t.creator_id, t.executor_id, t.created_at,
	s.name,
	TRIM(c.first_name || ' ' || c.last_name),
	COALESCE(TRIM(e.first_name || ' ' || e.last_name), '')`

const taskJoins = `
	FROM tasks t
	JOIN statuses s ON s.id = t.status_id
	JOIN users c ON c.id = t.creator_id
	LEFT JOIN users e ON e.id = t.executor_id`

// Store inserts the task row and its label links in one transaction, so a
// rejected label reference rolls back the task row too.
func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO tasks (name, description, status_id, creator_id, executor_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, q,
		task.Name, task.Description, task.StatusID, task.CreatorID, task.ExecutorID,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return translate(err)
	}
	if err := replaceLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return translate(err)
	}
	return tx.Commit()
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	q := `SELECT` + taskColumns + taskJoins + ` WHERE t.id = $1`
	t := &models.Task{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.StatusID, &t.CreatorID, &t.ExecutorID, &t.CreatedAt,
		&t.StatusName, &t.CreatorName, &t.ExecutorName,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	labels, err := r.labelIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	t.LabelIDs = labels
	return t, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT` + taskColumns + taskJoins

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.StatusID != nil {
		conditions = append(conditions, fmt.Sprintf("t.status_id = $%d", argID))
		args = append(args, *filter.StatusID)
		argID++
	}
	if filter.ExecutorID != nil {
		conditions = append(conditions, fmt.Sprintf("t.executor_id = $%d", argID))
		args = append(args, *filter.ExecutorID)
		argID++
	}
	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("t.creator_id = $%d", argID))
		args = append(args, *filter.CreatorID)
		argID++
	}
	if filter.LabelID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = $%d)", argID))
		args = append(args, *filter.LabelID)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY t.id"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.StatusID, &t.CreatorID, &t.ExecutorID, &t.CreatedAt,
			&t.StatusName, &t.CreatorName, &t.ExecutorName,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update never touches creator_id or created_at.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		UPDATE tasks SET
			name=$1, description=$2, status_id=$3, executor_id=$4
		WHERE id=$5`
	res, err := tx.ExecContext(ctx, q,
		task.Name, task.Description, task.StatusID, task.ExecutorID, task.ID,
	)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := replaceLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return translate(err)
	}
	return tx.Commit()
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id=$1`, id); err != nil {
		return translate(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *taskRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *taskRepository) labelIDs(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT label_id FROM task_labels WHERE task_id=$1 ORDER BY label_id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceLabels(ctx context.Context, tx *sql.Tx, taskID int64, labelIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id=$1`, taskID); err != nil {
		return err
	}
	for _, id := range labelIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_labels (task_id, label_id) VALUES ($1,$2)`, taskID, id); err != nil {
			return err
		}
	}
	return nil
}
