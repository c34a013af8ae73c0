package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"librarylens/internal/domain/entity"
	"librarylens/internal/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError_Postgres(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_purchases_user_book"})

	assert.True(t, IsDuplicateKeyError(err, "purchases"))
	assert.True(t, IsDuplicateKeyError(err, ""))
	assert.False(t, IsDuplicateKeyError(err, "email"))
	assert.False(t, IsForeignKeyError(err, ""))
}

func TestIsForeignKeyError_Postgres(t *testing.T) {
	t.Parallel()

	err := &pgconn.PgError{Code: "23503", ConstraintName: "books_section_id_fkey"}

	assert.True(t, IsForeignKeyError(err, "section"))
	assert.False(t, IsForeignKeyError(err, "purchases"))
	assert.False(t, IsDuplicateKeyError(err, ""))
}

func TestConstraintErrors_Fallbacks(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDuplicateKeyError(nil, ""))
	assert.False(t, IsForeignKeyError(nil, ""))
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey, ""))
	assert.False(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey, "email"))
	assert.True(t, IsForeignKeyError(gorm.ErrForeignKeyViolated, "section"))
	assert.False(t, IsDuplicateKeyError(errors.New("boom"), ""))
}

func TestConstraintErrors_SQLite(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	ctx := context.Background()
	roles := testutil.SeedRoles(t, db)
	student := testutil.CreateUser(t, db, "reader", roles[entity.RoleStudent])
	section := testutil.CreateSection(t, db, "Fiction")
	book := testutil.CreateBook(t, db, "Dune", "Herbert", "0441013597", section.ID)

	t.Run("unique isbn", func(t *testing.T) {
		isbn := "0441013597"
		err := NewBookRepository().Create(ctx, db, &entity.Book{Title: "Dune", Author: "Herbert", ISBN: &isbn, SectionID: section.ID, Available: true})
		require.Error(t, err)
		assert.True(t, IsDuplicateKeyError(err, "isbn"))
		assert.False(t, IsDuplicateKeyError(err, "purchases"))
	})

	t.Run("unique section name", func(t *testing.T) {
		err := NewSectionRepository().Create(ctx, db, &entity.Section{Name: "Fiction"})
		require.Error(t, err)
		assert.True(t, IsDuplicateKeyError(err, "sections"))
	})

	t.Run("unique purchase pair", func(t *testing.T) {
		repo := NewPurchaseRepository()
		purchase := func() *entity.Purchase {
			return &entity.Purchase{UserID: student.ID, BookID: book.ID, Status: entity.PurchaseStatusCompleted}
		}
		require.NoError(t, repo.Create(ctx, db, purchase()))

		err := repo.Create(ctx, db, purchase())
		require.Error(t, err)
		assert.True(t, IsDuplicateKeyError(err, "purchases"))
	})

	t.Run("missing section", func(t *testing.T) {
		err := NewBookRepository().Create(ctx, db, &entity.Book{Title: "Orphan", Author: "Nobody", SectionID: 999, Available: true})
		require.Error(t, err)
		assert.True(t, IsForeignKeyError(err, "section"))
	})
}
