package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
)

func TestClassify(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: sqlUniqueViolation})
	fk := &pgconn.PgError{Code: sqlForeignKeyViolation}
	other := errors.New("conexión cerrada")

	assert.ErrorIs(t, classify(unique, "insert category", domain.ErrDuplicate, nil), domain.ErrDuplicate)
	assert.ErrorIs(t, classify(fk, "delete warehouse", nil, domain.ErrConflict), domain.ErrConflict)
	assert.ErrorIs(t, classify(errProductRefs, "x", nil, nil), domain.ErrInvalidInput)

	// Sin mapeo para ese SQLSTATE: se envuelve.
	err := classify(fk, "insert category", domain.ErrDuplicate, nil)
	assert.EqualError(t, err, "insert category: "+fk.Error())
	assert.Equal(t, sqlForeignKeyViolation, sqlState(err))

	err = classify(other, "update user", domain.ErrEmailAlreadyExists, nil)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "", sqlState(err))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "a", *nullString("a"))
	assert.Equal(t, "", derefString(nil))
}

func TestPageArgs(t *testing.T) {
	l, o := pageArgs(0, -3)
	assert.Equal(t, 100, l)
	assert.Equal(t, 0, o)
	l, o = pageArgs(20, 40)
	assert.Equal(t, 20, l)
	assert.Equal(t, 40, o)
}
