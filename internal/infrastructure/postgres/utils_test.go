package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError("op", nil))

	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, mapWriteError("create product", unique), domain.ErrConflict)

	fk := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, mapWriteError("append stock movement", fk), domain.ErrNotFound)

	assert.ErrorIs(t, mapWriteError("update sale status", errNoRowsAffected), domain.ErrNotFound)

	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	assert.ErrorIs(t, mapWriteError("update sale status", badUUID), domain.ErrNotFound)

	other := errors.New("connection reset")
	err := mapWriteError("create sale", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "create sale")
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRows(errors.New("connection reset")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "y", deref(nullable("y")))
}
