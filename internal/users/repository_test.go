package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "store_name", "store_name_slug", "plan",
			"promo_user", "onboarding", "created_at"}).
			AddRow("user-1", "a@b.co", "Corner Bakery", "corner-bakery", "pro", true,
				[]byte(`{"sellLocations":["online"],"completed":true}`), time.Now()))

	u, err := NewRepository(db).Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, u.PromoUser)
	assert.True(t, u.Onboarding.Completed)
	assert.Equal(t, []string{"online"}, u.Onboarding.SellLocations)
}

func TestRepository_GetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewRepository(db).Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_CompleteOnboarding(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET onboarding = jsonb_set`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	assert.NoError(t, repo.CompleteOnboarding(context.Background(), "user-1"))
	assert.ErrorIs(t, repo.CompleteOnboarding(context.Background(), "ghost"), ErrNotFound)
}
