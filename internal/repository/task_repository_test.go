package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoWithMock(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock
}

func emptyTaskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "task_index", "status_id", "assignee_id"})
}

func TestList_NoFilters(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(emptyTaskRows())

	tasks, err := repo.List(TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_TitleContFilter(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE LOWER\(tasks\.name\) LIKE \$1`).
		WithArgs("%crash%").
		WillReturnRows(emptyTaskRows())

	needle := "Crash"
	_, err := repo.List(TaskFilter{TitleCont: &needle})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AssigneeFilter(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE tasks\.assignee_id = \$1`).
		WithArgs(uint64(7)).
		WillReturnRows(emptyTaskRows())

	assigneeID := uint64(7)
	_, err := repo.List(TaskFilter{AssigneeID: &assigneeID})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StatusFilterJoinsSlug(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`JOIN task_statuses ON task_statuses\.id = tasks\.status_id WHERE task_statuses\.slug = \$1`).
		WithArgs("draft").
		WillReturnRows(emptyTaskRows())

	slug := "draft"
	_, err := repo.List(TaskFilter{StatusSlug: &slug})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_LabelFilterUsesExists(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE EXISTS \(SELECT 1 FROM "task_labels" WHERE task_labels\.task_id = tasks\.id AND task_labels\.label_id = \$1\)`).
		WithArgs(uint64(3)).
		WillReturnRows(emptyTaskRows())

	labelID := uint64(3)
	_, err := repo.List(TaskFilter{LabelID: &labelID})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FiltersCombineWithAnd(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`LOWER\(tasks\.name\) LIKE \$1 AND tasks\.assignee_id = \$2 AND task_statuses\.slug = \$3 AND EXISTS`).
		WithArgs("%fix%", uint64(7), "draft", uint64(3)).
		WillReturnRows(emptyTaskRows())

	needle := "fix"
	assigneeID := uint64(7)
	slug := "draft"
	labelID := uint64(3)
	_, err := repo.List(TaskFilter{
		TitleCont:  &needle,
		AssigneeID: &assigneeID,
		StatusSlug: &slug,
		LabelID:    &labelID,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesJoinRowsFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM task_labels WHERE task_id = \$1`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE "tasks"\."id" = \$1`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByLabelID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "task_labels" WHERE label_id = \$1`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	exists, err := repo.ExistsByLabelID(3)
	require.NoError(t, err)
	require.True(t, exists)
}
