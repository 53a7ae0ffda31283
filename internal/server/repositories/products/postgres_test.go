package products

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var productRowColumns = []string{
	"id", "name", "category", "product_code", "image", "price",
	"minimum_quantity", "discount", "created_by", "created_at", "updated_at",
}

func sampleProduct() *models.Product {
	return &models.Product{
		Name:            "Widget",
		Category:        "tools",
		ProductCode:     "code-1",
		Image:           "products/k.png",
		Price:           9.5,
		MinimumQuantity: 2,
		Discount:        10,
		CreatedBy:       "u-1",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+products\s*\(name,\s*category,\s*product_code,\s*image,\s*price,\s*minimum_quantity,\s*discount,\s*created_by\)`

	created := time.Now()
	mock.ExpectQuery(q).
		WithArgs("Widget", "tools", "code-1", "products/k.png", 9.5, 2, 10.0, "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("p-1", created))

	got, err := repo.Create(context.Background(), sampleProduct())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "p-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+products`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleProduct())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_ExcludesDeleted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+products\s+WHERE\s+id\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`

	updated := time.Now()
	rows := sqlmock.NewRows(productRowColumns).
		AddRow("p-1", "Widget", "tools", "code-1", "", 9.5, 2, 10.0, "u-1", time.Now(), updated)
	mock.ExpectQuery(q).
		WithArgs("p-1").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Name != "Widget" || got.UpdatedAt == nil || !got.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+products`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want apperrors.ErrNotFound, got %v", err)
	}
}

func TestSelectAll_OrderedNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+products\s+WHERE\s+deleted_at\s+IS\s+NULL\s+ORDER\s+BY\s+created_at\s+DESC`

	rows := sqlmock.NewRows(productRowColumns).
		AddRow("p-2", "New", "tools", "c2", "", 1.0, 1, 0.0, "u-1", time.Now(), nil).
		AddRow("p-1", "Old", "tools", "c1", "", 1.0, 1, 0.0, "u-1", time.Now().Add(-time.Hour), nil)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.SelectAll(context.Background())
	if err != nil {
		t.Fatalf("SelectAll error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSelectByCategory(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+products\s+WHERE\s+category\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`

	rows := sqlmock.NewRows(productRowColumns).
		AddRow("p-1", "Widget", "tools", "c1", "", 1.0, 1, 0.0, "u-1", time.Now(), nil)
	mock.ExpectQuery(q).
		WithArgs("tools").
		WillReturnRows(rows)

	got, err := repo.SelectByCategory(context.Background(), "tools")
	if err != nil || len(got) != 1 {
		t.Fatalf("SelectByCategory: got (%v, %v)", got, err)
	}
}

func TestCategories(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+DISTINCT\s+category\s+FROM\s+products\s+WHERE\s+deleted_at\s+IS\s+NULL`

	rows := sqlmock.NewRows([]string{"category"}).AddRow("tools").AddRow("toys")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if len(got) != 2 || got[0] != "tools" || got[1] != "toys" {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestUpdate_StampsUpdatedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+products\s+SET\s+name\s*=\s*\$2,.*updated_at\s*=\s*\$8\s+WHERE\s+id\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`

	mock.ExpectExec(q).
		WillReturnResult(sqlmock.NewResult(0, 1))

	product := sampleProduct()
	product.ID = "p-1"
	if err := repo.Update(context.Background(), product); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if product.UpdatedAt == nil {
		t.Fatal("UpdatedAt not stamped")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+products`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	product := sampleProduct()
	product.ID = "ghost"
	if err := repo.Update(context.Background(), product); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want apperrors.ErrNotFound, got %v", err)
	}
}

func TestSoftDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+products\s+SET\s+deleted_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s+AND\s+deleted_at\s+IS\s+NULL`

	at := time.Now()
	mock.ExpectExec(q).
		WithArgs("p-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "p-1", at); err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}

	mock.ExpectExec(q).
		WithArgs("p-1", at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SoftDelete(context.Background(), "p-1", at); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: want apperrors.ErrNotFound, got %v", err)
	}
}
