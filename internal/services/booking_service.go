package services

import (
	"fmt"
	"time"

	"bustix/internal/domain"
	"bustix/internal/repositories"
	"bustix/internal/seatmap"
	"bustix/internal/utils"
)

// BookingService is the only component allowed to mutate a seat ledger.
type BookingService struct {
	Schedules repositories.ScheduleRepository
	Ledger    repositories.SeatLedgerRepository
	RequestID string
	Now       func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookSeats validates a booking request and applies it atomically, returning
// the full booked set for the date. An overlap fails the whole request with a
// conflict naming exactly the already-booked seats; nothing partial is written.
func (s BookingService) BookSeats(scheduleID int64, date string, seatIDs []string, bookedBy int64) ([]string, error) {
	schedule, err := s.Schedules.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}

	seats := seatmap.Normalize(seatIDs)
	if err := seatmap.Validate(schedule.SeatClass, schedule.TotalSeats, seats); err != nil {
		return nil, err
	}

	if utils.TrimOrEmpty(date) == "" {
		date = utils.FormatDate(s.now())
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	if !utils.DateWithin(date, schedule.StartDate, schedule.EndDate) {
		return nil, domain.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("outside validity window %s..%s", schedule.StartDate, schedule.EndDate),
		}
	}

	booked, err := s.Ledger.Book(scheduleID, date, seats, bookedBy)
	if err != nil {
		return nil, err
	}

	utils.LogEvent(s.RequestID, "booking", "book_seats",
		fmt.Sprintf("schedule_id=%d date=%s seats=%d", scheduleID, date, len(seats)))
	return booked, nil
}

// ReleaseSeats is the admin-side inverse of BookSeats. Releasing a seat that
// is not booked is a no-op for that seat.
func (s BookingService) ReleaseSeats(scheduleID int64, date string, seatIDs []string) (int64, error) {
	schedule, err := s.Schedules.GetByID(scheduleID)
	if err != nil {
		return 0, err
	}

	seats := seatmap.Normalize(seatIDs)
	if err := seatmap.Validate(schedule.SeatClass, schedule.TotalSeats, seats); err != nil {
		return 0, err
	}
	if utils.TrimOrEmpty(date) == "" {
		return 0, domain.ValidationError{Field: "date", Msg: "is required"}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return 0, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	released, err := s.Ledger.Release(scheduleID, date, seats)
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "booking", "release_seats",
		fmt.Sprintf("schedule_id=%d date=%s released=%d", scheduleID, date, released))
	return released, nil
}

// ResetDaily clears today's ledger rows across all active schedules.
// Running it again when today is already clear is a no-op.
func (s BookingService) ResetDaily() (int64, error) {
	today := utils.FormatDate(s.now())
	cleared, err := s.Ledger.ResetDate(today)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "booking", "reset_daily",
		fmt.Sprintf("date=%s cleared=%d", today, cleared))
	return cleared, nil
}
