package repositories

import (
	"reflect"
	"testing"

	"bustix/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestLedgerForGroupsByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM schedule_seats").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"travel_date", "seat_code"}).
			AddRow("2025-11-01", "S1").
			AddRow("2025-11-01", "S2").
			AddRow("2025-11-02", "S1"))

	repo := SeatLedgerRepository{DB: db}
	ledger, err := repo.LedgerFor(1)
	if err != nil {
		t.Fatalf("ledger error: %v", err)
	}

	want := map[string][]string{
		"2025-11-01": {"S1", "S2"},
		"2025-11-02": {"S1"},
	}
	if !reflect.DeepEqual(ledger, want) {
		t.Fatalf("ledger = %v, want %v", ledger, want)
	}
}

func TestBookedForIsEmptyBeforeFirstBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM schedule_seats").WithArgs(int64(1), "2025-11-03").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}))

	repo := SeatLedgerRepository{DB: db}
	booked, err := repo.BookedFor(1, "2025-11-03")
	if err != nil {
		t.Fatalf("booked error: %v", err)
	}
	if len(booked) != 0 {
		t.Fatalf("booked set should be empty, got %v", booked)
	}
}

func TestBookMapsDuplicateKeyToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the FOR UPDATE read sees nothing, but a racing commit lands first and
	// the unique key rejects the insert
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(1), "2025-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}))
	mock.ExpectExec("INSERT INTO schedule_seats").
		WithArgs(int64(1), "2025-11-01", "S7", int64(0)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := SeatLedgerRepository{DB: db}
	_, err = repo.Book(1, "2025-11-01", []string{"S7"}, 0)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict from duplicate key, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseWithNoSeatsIsNoop(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := SeatLedgerRepository{DB: db}
	n, err := repo.Release(1, "2025-11-01", nil)
	if err != nil || n != 0 {
		t.Fatalf("expected (0, nil), got (%d, %v)", n, err)
	}
}
