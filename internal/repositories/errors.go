package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors the service/handler layers branch on. The SQL repositories
// translate driver errors into these so nothing above ever touches pq.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record with this name already exists")
	ErrInUse     = errors.New("record is referenced by other records")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps Postgres constraint violations onto the sentinels above.
// Unique violations back the form-level uniqueness check at the transaction
// boundary; foreign-key violations are the delete guards (FKs are RESTRICT).
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrInUse
		}
	}
	return err
}
