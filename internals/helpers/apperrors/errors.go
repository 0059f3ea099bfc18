// Package apperrors berisi taksonomi error domain rapor yang dipetakan ke HTTP oleh helper.
package apperrors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("data tidak ditemukan")
	ErrNoActiveTerm = errors.New("tidak ada term aktif")
	ErrEmptyCohort  = errors.New("rombel tidak memiliki siswa pada term ini")
)

// FieldError is used to indicate an error with a specific field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return "validation failed"
	}
	return err.Err.Error()
}

// FieldMap: bentuk {field: [pesan]} untuk helper.JsonValidationError.
func (err *ValidationError) FieldMap() map[string][]string {
	out := make(map[string][]string, len(err.Fields))
	for _, f := range err.Fields {
		out[f.Field] = append(out[f.Field], f.Error)
	}
	return out
}

// LockedStateError: mutasi pada rapor yang sudah dikunci.
type LockedStateError struct {
	EnrollmentIDs []uuid.UUID
}

func (err *LockedStateError) Error() string {
	if len(err.EnrollmentIDs) == 0 {
		return "rapor sudah dikunci"
	}
	ids := make([]string, 0, len(err.EnrollmentIDs))
	for _, id := range err.EnrollmentIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return fmt.Sprintf("rapor sudah dikunci (enrollment: %s)", strings.Join(ids, ", "))
}

// TransactionError membungkus kegagalan simpan massal; seluruh batch di-rollback.
type TransactionError struct {
	Op  string
	Err error
}

func NewTransactionError(op string, err error) error {
	return &TransactionError{Op: op, Err: errors.WithStack(err)}
}

func (err *TransactionError) Error() string {
	return fmt.Sprintf("%s gagal, semua perubahan dibatalkan: %v", err.Op, errors.Cause(err.Err))
}

func (err *TransactionError) Unwrap() error { return errors.Cause(err.Err) }

func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsLocked(err error) (*LockedStateError, bool) {
	var le *LockedStateError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// FromDB memetakan pelanggaran unique key Postgres (23505) menjadi ValidationError.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return NewValidationError(errors.New("data duplikat"), FieldError{
			Field: pgErr.ConstraintName,
			Error: "sudah ada",
		})
	}
	return err
}

// IsDomain: error yang sudah punya arti bagi pemanggil (validasi, locked, not found, dst).
func IsDomain(err error) bool {
	if _, ok := IsValidation(err); ok {
		return true
	}
	if _, ok := IsLocked(err); ok {
		return true
	}
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmptyCohort) ||
		errors.Is(err, ErrNoActiveTerm)
}

// WrapTx: error domain diteruskan apa adanya, selain itu jadi TransactionError.
func WrapTx(op string, err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	var te *TransactionError
	if errors.As(err, &te) {
		return err
	}
	return NewTransactionError(op, err)
}
