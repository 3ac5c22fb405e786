package gopaginate

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

type tUser struct {
	ID   uint
	Name string
	Age  int
}

const (
	placeholderRe = `(?:\$\d+|\?)`
	limitRe       = `LIMIT (?:\d+|\$\d+|\?)`
	offsetRe      = `OFFSET (?:\d+|\$\d+|\?)`
)

func userRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "age"})
	for _, id := range ids {
		rows.AddRow(id, "user", 20+id)
	}

	return rows
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func Test_OffsetPaginator_Paginate(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			dbMock.MatchExpectationsInOrder(false)
			dbMock.ExpectQuery(`^SELECT \* FROM .t_users. ` + limitRe + ` ` + offsetRe + `$`).
				WillReturnRows(userRows(3, 4))
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM .t_users.$`).
				WillReturnRows(countRows(5))

			res, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{
				Page:  2,
				Limit: 2,
			})
			require.NoError(t, err)
			require.NoError(t, dbMock.ExpectationsWereMet())

			assert.Equal(t, []tUser{{ID: 3, Name: "user", Age: 23}, {ID: 4, Name: "user", Age: 24}}, res.Data)
			assert.Equal(t, 2, res.Pagination.CurrentPage)
			assert.Equal(t, 2, res.Pagination.ItemsPerPage)
			assert.Equal(t, int64(5), res.Pagination.TotalItems)
			assert.Equal(t, 3, res.Pagination.TotalPages)
			assert.Equal(t, 3, res.Pagination.From)
			assert.Equal(t, []PageLink{
				{URL: "/?page=1", Label: DefaultPreviousLabel, Page: 1},
				{URL: "/?page=1", Label: "1", Page: 1},
				{URL: "/?page=2", Label: "2", Active: true, Page: 2},
				{URL: "/?page=3", Label: "3", Page: 3},
				{URL: "/?page=3", Label: DefaultNextLabel, Page: 3},
			}, res.Pagination.Links)
		})
	}
}

func Test_OffsetPaginator_Paginate_defaults(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			dbMock.MatchExpectationsInOrder(false)
			dbMock.ExpectQuery(`^SELECT \* FROM .t_users. ` + limitRe + `$`).
				WillReturnRows(userRows(1))
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM .t_users.$`).
				WillReturnRows(countRows(1))

			res, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{
				Page:  -3,
				Limit: -5,
			})
			require.NoError(t, err)
			require.NoError(t, dbMock.ExpectationsWereMet())

			assert.Equal(t, OffsetDefaultPage, res.Pagination.CurrentPage)
			assert.Equal(t, OffsetDefaultLimit, res.Pagination.ItemsPerPage)
			assert.Equal(t, 1, res.Pagination.TotalPages)
			assert.Equal(t, []PageLink{{URL: "/?page=1", Label: "1", Active: true, Page: 1}}, res.Pagination.Links)
		})
	}
}

func Test_OffsetPaginator_Paginate_pageZero(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			res, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{
				Page:  0,
				Limit: 5,
			})
			require.NoError(t, err)

			// No query may reach the source.
			require.NoError(t, dbMock.ExpectationsWereMet())

			assert.Equal(t, []tUser{}, res.Data)
			assert.Equal(t, int64(0), res.Pagination.TotalItems)
			assert.Equal(t, 0, res.Pagination.CurrentPage)
			assert.Empty(t, res.Pagination.Links)
		})
	}
}

func Test_OffsetPaginator_Paginate_where(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			dbMock.MatchExpectationsInOrder(false)
			dbMock.ExpectQuery(`^SELECT \* FROM .t_users. WHERE .age. = ` + placeholderRe + ` ` + limitRe + `$`).
				WillReturnRows(userRows(1))
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM .t_users. WHERE .age. = ` + placeholderRe + `$`).
				WithArgs(30).
				WillReturnRows(countRows(1))

			_, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{
				Page:  1,
				Limit: 10,
				Where: []clause.Expression{clause.Eq{Column: "age", Value: 30}},
			})
			require.NoError(t, err)
			require.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_OffsetPaginator_Paginate_queryBuilder(t *testing.T) {
	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			dbMock.MatchExpectationsInOrder(false)
			dbMock.ExpectQuery(`^SELECT \* FROM .t_users. WHERE name <> ` + placeholderRe + ` ORDER BY id DESC ` + limitRe + `$`).
				WillReturnRows(userRows(9, 8))
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM \(SELECT \* FROM .t_users. WHERE name <> ` + placeholderRe + `\) AS paginate_count$`).
				WithArgs("x").
				WillReturnRows(countRows(7))

			src := QueryBuilder(db.Model(&tUser{}).Where("name <> ?", "x").Order("id DESC").Limit(50))

			res, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), src, OffsetOptions{Page: 1, Limit: 2})
			require.NoError(t, err)
			require.NoError(t, dbMock.ExpectationsWereMet())

			assert.Len(t, res.Data, 2)
			assert.Equal(t, int64(7), res.Pagination.TotalItems)
			assert.Equal(t, 4, res.Pagination.TotalPages)
		})
	}
}

func Test_OffsetPaginator_Paginate_sourceError(t *testing.T) {
	boom := errors.New("boom")

	for _, mockFn := range sqlMockFnList() {
		dialect, db, dbMock, err := mockFn()
		require.NoError(t, err)

		t.Run(dialect, func(t *testing.T) {
			dbMock.MatchExpectationsInOrder(false)
			dbMock.ExpectQuery(`^SELECT \* FROM .t_users.`).WillReturnError(boom)
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM .t_users.$`).WillReturnRows(countRows(3))

			res, err := NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{Page: 1, Limit: 2})
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, res)
		})
	}
}

func Test_OffsetPaginator_Paginate_invalidPaginationType(t *testing.T) {
	_, db, _, err := newGORMPostgresMock()
	require.NoError(t, err)

	_, err = NewOffsetPaginator[tUser]().Paginate(context.Background(), Repository[tUser](db), OffsetOptions{
		Page:           1,
		Limit:          2,
		PaginationType: "cursor",
	})
	assert.ErrorIs(t, err, ErrMisconfigured)
}
