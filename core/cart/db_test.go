package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func testItem() Item {
	now := time.Now().UTC()
	return Item{
		ID:        "6cd79fcb-7916-4b5e-b700-13e5d1b1c374",
		CartID:    "cart-1",
		CourseID:  "9a53e9c0-26b2-4f44-a3a5-9a47c22ff8f7",
		Price:     decimal.RequireFromString("100.00"),
		TaxFee:    decimal.RequireFromString("10.00"),
		Total:     decimal.RequireFromString("110.00"),
		Country:   "Testland",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUpsertReportsCreated(t *testing.T) {
	db, mock := newMock(t)
	it := testItem()

	rows := sqlmock.NewRows([]string{"item_id", "created_at", "created"}).
		AddRow(it.ID, it.CreatedAt, true)
	mock.ExpectQuery("INSERT INTO cart_items").WillReturnRows(rows)

	got, created, err := Upsert(context.Background(), db, it)
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if !created {
		t.Error("first upsert must report created")
	}
	if got.ID != it.ID {
		t.Errorf("item id %s, expected %s", got.ID, it.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertReportsUpdated(t *testing.T) {
	db, mock := newMock(t)
	it := testItem()

	// The row already existed: the store answers with the original id and
	// creation time, not the ones we generated for the attempt.
	origID := "3f8a5dd2-56cc-4f3d-9d38-3a005bd0cf9b"
	origAt := time.Now().UTC().Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"item_id", "created_at", "created"}).
		AddRow(origID, origAt, false)
	mock.ExpectQuery("INSERT INTO cart_items").WillReturnRows(rows)

	got, created, err := Upsert(context.Background(), db, it)
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if created {
		t.Error("second upsert of the same (cart, course) must report updated")
	}
	if got.ID != origID {
		t.Errorf("item id %s, expected the original row id %s", got.ID, origID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("cart-1", "unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := DeleteItem(context.Background(), db, "cart-1", "unknown")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for an absent item, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSummarizeEmptyCart(t *testing.T) {
	db, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"total_price", "total_tax_fee", "total"}).
		AddRow("0", "0", "0")
	mock.ExpectQuery("SELECT").WithArgs("empty").WillReturnRows(rows)

	s, err := Summarize(context.Background(), db, "empty")
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}

	if !s.TotalPrice.IsZero() || !s.TotalTax.IsZero() || !s.Total.IsZero() {
		t.Errorf("empty cart must summarize to zeros, got %+v", s)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
