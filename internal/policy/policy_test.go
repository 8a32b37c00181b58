package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPolicyTest(t *testing.T) (*Policy, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.TaskStatus{}, &models.Label{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return New(repository.NewTaskRepository(db)), db
}

func TestPolicy_IsSelf(t *testing.T) {
	p, _ := setupPolicyTest(t)

	require.True(t, p.IsSelf(1, 1))
	require.False(t, p.IsSelf(1, 2))
}

func TestPolicy_IsTaskAssignee(t *testing.T) {
	p, db := setupPolicyTest(t)

	owner := models.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)

	status := models.TaskStatus{Name: "draft", Slug: "draft"}
	require.NoError(t, db.Create(&status).Error)

	assigned := models.Task{Name: "Assigned", StatusID: status.ID, AssigneeID: &owner.ID}
	require.NoError(t, db.Create(&assigned).Error)
	unassigned := models.Task{Name: "Unassigned", StatusID: status.ID}
	require.NoError(t, db.Create(&unassigned).Error)

	ok, err := p.IsTaskAssignee(owner.ID, assigned.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = p.IsTaskAssignee(other.ID, assigned.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = p.IsTaskAssignee(owner.ID, unassigned.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPolicy_IsTaskAssignee_MissingTask(t *testing.T) {
	p, _ := setupPolicyTest(t)

	// A missing task is a hard failure, not a silent false.
	_, err := p.IsTaskAssignee(1, 9999)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
