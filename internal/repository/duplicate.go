package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an insert violates a unique constraint.
// The constraint is the authoritative guard against races past application
// pre-checks, so callers must treat this exactly like a pre-check hit.
var ErrDuplicateKey = errors.New("duplicate key")

const mysqlDuplicateEntry = 1062

func translateDuplicate(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
