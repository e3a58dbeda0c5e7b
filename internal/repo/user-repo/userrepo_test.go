package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	created := time.Now()
	query := regexp.QuoteMeta("SELECT id, external_id, username, created_at FROM users WHERE id = $1")

	tests := []struct {
		name      string
		id        int64
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name: "User found",
			id:   1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "external_id", "username", "created_at"}).
					AddRow(int64(1), int64(555), "alice", created)
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, ExternalID: 555, Username: "alice", CreatedAt: created},
		},
		{
			name: "User not found",
			id:   2,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByExternalID(t *testing.T) {
	repo, mock := NewMock(t)
	created := time.Now()
	rows := pgxmock.NewRows([]string{"id", "external_id", "username", "created_at"}).
		AddRow(int64(3), int64(777), "bob", created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE external_id = $1")).
		WithArgs(int64(777)).
		WillReturnRows(rows)

	result, err := repo.FindByExternalID(context.Background(), 777)
	assert.NoError(t, err)
	assert.Equal(t, &domain.User{ID: 3, ExternalID: 777, Username: "bob", CreatedAt: created}, result)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	created := time.Now()
	query := regexp.QuoteMeta(`
		INSERT INTO users (external_id, username)
		VALUES ($1, $2)
		RETURNING id, created_at
	`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(int64(555), "alice").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))
			},
			result: &domain.User{ID: 1, ExternalID: 555, Username: "alice", CreatedAt: created},
		},
		{
			name: "Duplicate external id",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(int64(555), "alice").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_external_id_key"})
			},
			expectErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), &domain.User{ExternalID: 555, Username: "alice"})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}
