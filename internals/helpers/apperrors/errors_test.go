package apperrors

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTx(t *testing.T) {
	assert.Nil(t, WrapTx("op", nil))

	domain := []error{
		ErrNotFound,
		errors.Wrap(ErrEmptyCohort, "rombel"),
		NewValidationError(nil, FieldError{Field: "x", Error: "required"}),
		&LockedStateError{},
	}
	for _, err := range domain {
		assert.Same(t, err, WrapTx("op", err))
	}

	cause := errors.New("deadlock")
	err := WrapTx("simpan nilai", cause)
	var te *TransactionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "simpan nilai", te.Op)
	assert.Equal(t, "simpan nilai gagal, semua perubahan dibatalkan: deadlock", err.Error())
	assert.True(t, errors.Is(err, cause))

	assert.Same(t, err, WrapTx("lagi", err), "tidak dibungkus dua kali")
}

func TestFromDB(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_students_nis"}
	ve, ok := IsValidation(FromDB(errors.Wrap(dup, "insert")))
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"uq_students_nis": {"sudah ada"}}, ve.FieldMap())

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(other), FromDB(other))
	assert.Nil(t, FromDB(nil))
}
