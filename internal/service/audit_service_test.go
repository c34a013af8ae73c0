package service

import (
	"context"
	"testing"

	"librarylens/internal/domain/entity"
	"librarylens/internal/repository"
	"librarylens/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_EntryFollowsTransaction(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	ctx := context.Background()
	auditRepo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), auditRepo)

	section := &entity.Section{ID: 5, Name: "Fiction"}

	rolledBack := db.Begin()
	require.NoError(t, svc.LogCreate(ctx, rolledBack, nil, entity.AuditActionSectionCreate, "section", section.ID, section))
	require.NoError(t, rolledBack.Rollback().Error)

	committed := db.Begin()
	require.NoError(t, svc.LogDelete(ctx, committed, nil, entity.AuditActionSectionDelete, "section", section.ID, section))
	require.NoError(t, committed.Commit().Error)

	logs, total, err := auditRepo.FindAll(ctx, db, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionSectionDelete, logs[0].Action)
	assert.Equal(t, "section", logs[0].Metadata["entity"])
	assert.Equal(t, "5", logs[0].Metadata["entity_id"])
	assert.Nil(t, logs[0].Metadata["new_value"])
}
