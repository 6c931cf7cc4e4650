package promo

import (
	"context"
	"errors"
	"testing"

	"storefront-platform/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promoCols = []string{"id", "total_spots", "used_spots", "is_active"}

func expectEnsure(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`INSERT INTO promo_config .* ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("earlyAccess", 100).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestClaim_LastSpot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectEnsure(mock)
	mock.ExpectQuery(`SELECT id, total_spots, used_spots, is_active\s+FROM promo_config WHERE id = \$1 FOR UPDATE`).
		WithArgs("earlyAccess").
		WillReturnRows(sqlmock.NewRows(promoCols).AddRow("earlyAccess", 100, 99, true))
	mock.ExpectExec(`UPDATE promo_config SET used_spots = used_spots \+ 1`).
		WithArgs("earlyAccess").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a := NewAllocator(db, "earlyAccess", 100, logger.NewTestLogger(t))
	granted, err := a.Claim(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaim_Exhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectEnsure(mock)
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("earlyAccess").
		WillReturnRows(sqlmock.NewRows(promoCols).AddRow("earlyAccess", 100, 100, true))
	mock.ExpectCommit()

	granted, err := NewAllocator(db, "earlyAccess", 100, logger.NewTestLogger(t)).Claim(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaim_Inactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectEnsure(mock)
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(promoCols).AddRow("earlyAccess", 100, 3, false))
	mock.ExpectCommit()

	granted, err := NewAllocator(db, "earlyAccess", 100, logger.NewTestLogger(t)).Claim(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestClaim_FirstEverSignup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO promo_config`).
		WithArgs("earlyAccess", 100).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(promoCols).AddRow("earlyAccess", 100, 0, true))
	mock.ExpectExec(`UPDATE promo_config`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	granted, err := NewAllocator(db, "earlyAccess", 100, logger.NewTestLogger(t)).Claim(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaim_ErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	expectEnsure(mock)
	mock.ExpectQuery(`FOR UPDATE`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	granted, err := NewAllocator(db, "earlyAccess", 100, logger.NewTestLogger(t)).Claim(context.Background())
	assert.Error(t, err)
	assert.False(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
