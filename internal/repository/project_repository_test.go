package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
)

func newProjectRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestProjectRepositoryUpsertAndList(t *testing.T) {
	db, mock, cleanup := newProjectRepoMock(t)
	defer cleanup()

	repo := NewProjectRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO projects")).
		WithArgs("p1", "u1", "ระบบกำลังพล", "2569", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	project := &models.Project{ID: "p1", UnitID: "u1", Name: "ระบบกำลังพล", FiscalYear: "2569"}
	require.NoError(t, repo.Upsert(context.Background(), project))

	rows := sqlmock.NewRows([]string{"id", "unit_id", "name", "fiscal_year", "group_id", "deleted_at"}).
		AddRow("p1", "u1", "ระบบกำลังพล", "2569", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, unit_id, name, fiscal_year, group_id, deleted_at FROM projects ORDER BY id")).
		WillReturnRows(rows)

	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "p1", projects[0].ID)
	require.Nil(t, projects[0].DeletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositorySetDeletedAt(t *testing.T) {
	db, mock, cleanup := newProjectRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	deletedAt := int64(1700000000000)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET deleted_at = $1 WHERE id = $2")).
		WithArgs(deletedAt, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDeletedAt(context.Background(), "p1", &deletedAt))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET deleted_at = $1 WHERE id = $2")).
		WithArgs(nil, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDeletedAt(context.Background(), "p1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryDeleteByUnit(t *testing.T) {
	db, mock, cleanup := newProjectRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow("p1").AddRow("p2")
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM projects WHERE unit_id = $1 RETURNING id")).
		WithArgs("u1").
		WillReturnRows(rows)

	ids, err := repo.DeleteByUnit(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryListExpired(t *testing.T) {
	db, mock, cleanup := newProjectRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	expired := int64(1600000000000)
	rows := sqlmock.NewRows([]string{"id", "unit_id", "name", "fiscal_year", "group_id", "deleted_at"}).
		AddRow("p9", "u1", "old", "2568", nil, expired)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, unit_id, name, fiscal_year, group_id, deleted_at FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < $1 ORDER BY deleted_at")).
		WithArgs(int64(1700000000000)).
		WillReturnRows(rows)

	projects, err := repo.ListExpired(context.Background(), 1700000000000)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.NotNil(t, projects[0].DeletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryClearGroup(t *testing.T) {
	db, mock, cleanup := newProjectRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET group_id = NULL WHERE group_id = $1")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.ClearGroup(context.Background(), "g1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
