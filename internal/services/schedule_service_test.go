package services

import (
	"strings"
	"testing"

	"bustix/internal/domain"
	"bustix/internal/domain/models"
	"bustix/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func validSchedule() models.Schedule {
	return models.Schedule{
		OperatorName:  "Kaveri Travels",
		Origin:        "Bengaluru",
		Destination:   "Chennai",
		ACType:        "AC",
		SeatClass:     "Seater",
		TotalSeats:    40,
		Fare:          550,
		DepartureTime: "21:30",
		StartDate:     "2025-10-01",
		EndDate:       "2025-12-31",
	}
}

func TestValidateSchedule(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Schedule)
		field  string
	}{
		{"missing operator", func(s *models.Schedule) { s.OperatorName = " " }, "operatorName"},
		{"missing origin", func(s *models.Schedule) { s.Origin = "" }, "origin"},
		{"bad ac type", func(s *models.Schedule) { s.ACType = "Deluxe" }, "acType"},
		{"bad seat class", func(s *models.Schedule) { s.SeatClass = "Semi" }, "seatClass"},
		{"zero seats", func(s *models.Schedule) { s.TotalSeats = 0 }, "totalSeats"},
		{"negative fare", func(s *models.Schedule) { s.Fare = -1 }, "fare"},
		{"bad time", func(s *models.Schedule) { s.DepartureTime = "9 PM" }, "departureTime"},
		{"bad start date", func(s *models.Schedule) { s.StartDate = "01-10-2025" }, "startDate"},
		{"window inverted", func(s *models.Schedule) { s.StartDate = "2025-12-31"; s.EndDate = "2025-10-01" }, "endDate"},
	}

	for _, tc := range cases {
		s := validSchedule()
		tc.mutate(&s)
		err := validateSchedule(&s)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Fatalf("%s: error %q should mention %s", tc.name, err.Error(), tc.field)
		}
	}

	s := validSchedule()
	if err := validateSchedule(&s); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}
}

func TestUpdateRejectsClientSuppliedLedger(t *testing.T) {
	svc := ScheduleService{}
	in := validSchedule()
	in.BookedSeats = models.SeatLedger{"2025-11-01": {"S1"}}

	_, err := svc.Update(1, in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bookedSeats") {
		t.Fatalf("error should name bookedSeats, got %q", err.Error())
	}
}

func TestGetWithLedgerAttachesProjection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(1)).
		WillReturnRows(seaterScheduleRow())
	mock.ExpectQuery("FROM schedule_seats").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"travel_date", "seat_code"}).
			AddRow("2025-11-01", "S1").
			AddRow("2025-11-01", "S2"))

	svc := ScheduleService{
		Schedules: repositories.ScheduleRepository{DB: db},
		Ledger:    repositories.SeatLedgerRepository{DB: db},
	}
	out, err := svc.GetWithLedger(1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if len(out.BookedSeats["2025-11-01"]) != 2 {
		t.Fatalf("ledger projection missing: %+v", out.BookedSeats)
	}
}
