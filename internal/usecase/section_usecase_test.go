package usecase_test

import (
	"context"
	"testing"

	"librarylens/internal/delivery/dto"
	"librarylens/internal/delivery/http/middleware"
	"librarylens/internal/domain/entity"
	"librarylens/internal/testutil"
	"librarylens/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionUsecase_CreateRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sections.CreateSection(ctx, &dto.SectionRequest{Name: "Fiction", Description: "Stories"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = f.sections.CreateSection(ctx, &dto.SectionRequest{Name: " Fiction "})
	assert.ErrorIs(t, err, usecase.ErrDuplicateSectionName)
}

func TestSectionUsecase_UpdateChecksNameOnlyWhenChanged(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	fiction := testutil.CreateSection(t, f.db, "Fiction")
	testutil.CreateSection(t, f.db, "History")

	updated, err := f.sections.UpdateSection(ctx, fiction.ID, &dto.SectionRequest{Name: "Fiction", Description: "Novels"})
	require.NoError(t, err)
	assert.Equal(t, "Novels", updated.Description)

	_, err = f.sections.UpdateSection(ctx, fiction.ID, &dto.SectionRequest{Name: "History"})
	assert.ErrorIs(t, err, usecase.ErrDuplicateSectionName)

	renamed, err := f.sections.UpdateSection(ctx, fiction.ID, &dto.SectionRequest{Name: "Novels"})
	require.NoError(t, err)
	assert.Equal(t, "Novels", renamed.Name)

	_, err = f.sections.UpdateSection(ctx, 999, &dto.SectionRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, usecase.ErrSectionNotFound)
}

func TestSectionUsecase_DeleteOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	empty := testutil.CreateSection(t, f.db, "Empty")
	owning := testutil.CreateSection(t, f.db, "Owning")
	testutil.CreateBook(t, f.db, "Dune", "Herbert", "", owning.ID)

	require.NoError(t, f.sections.DeleteSection(ctx, empty.ID))
	_, err := f.sections.GetSection(ctx, empty.ID)
	assert.ErrorIs(t, err, usecase.ErrSectionNotFound)

	err = f.sections.DeleteSection(ctx, owning.ID)
	assert.ErrorIs(t, err, usecase.ErrSectionNotEmpty)
	_, err = f.sections.GetSection(ctx, owning.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.sections.DeleteSection(ctx, empty.ID), usecase.ErrSectionNotFound)
}

func TestSectionUsecase_AuditRecordsActor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	librarian := f.user(t, "librarian", entity.RoleLibrarian)
	ctx := middleware.WithIdentity(context.Background(), librarian.ID, librarian.Username, entity.RoleLibrarian)

	_, err := f.sections.CreateSection(ctx, &dto.SectionRequest{Name: "Poetry"})
	require.NoError(t, err)

	logs, page, err := f.audit.GetAllAuditLogs(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, entity.AuditActionSectionCreate, logs.Logs[0].Action)
	require.NotNil(t, logs.Logs[0].User)
	assert.Equal(t, "librarian", logs.Logs[0].User.Username)
}
