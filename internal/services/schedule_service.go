package services

import (
	"fmt"
	"time"

	"bustix/internal/domain"
	"bustix/internal/domain/models"
	"bustix/internal/repositories"
	"bustix/internal/utils"
)

// ScheduleService wraps schedule CRUD with invariant checks. The seat ledger
// is read-only here: updates never accept client-supplied ledger content, so
// an admin edit cannot clobber concurrent bookings.
type ScheduleService struct {
	Schedules repositories.ScheduleRepository
	Ledger    repositories.SeatLedgerRepository
	RequestID string
}

func (s ScheduleService) Create(in models.Schedule) (models.Schedule, error) {
	if err := validateSchedule(&in); err != nil {
		return models.Schedule{}, err
	}
	created, err := s.Schedules.Create(in)
	if err != nil {
		return models.Schedule{}, err
	}
	utils.LogEvent(s.RequestID, "schedule", "create", fmt.Sprintf("id=%d", created.ID))
	created.BookedSeats = models.SeatLedger{}
	return created, nil
}

// GetWithLedger loads a schedule together with its booked-seats projection.
func (s ScheduleService) GetWithLedger(id int64) (models.Schedule, error) {
	schedule, err := s.Schedules.GetByID(id)
	if err != nil {
		return models.Schedule{}, err
	}
	ledger, err := s.Ledger.LedgerFor(id)
	if err != nil {
		return models.Schedule{}, err
	}
	schedule.BookedSeats = ledger
	return schedule, nil
}

func (s ScheduleService) ListActive() ([]models.Schedule, error) {
	return s.Schedules.ListActive()
}

func (s ScheduleService) Update(id int64, in models.Schedule) (models.Schedule, error) {
	if in.BookedSeats != nil {
		return models.Schedule{}, domain.ValidationError{
			Field: "bookedSeats",
			Msg:   "cannot be modified through schedule update; use booking and release operations",
		}
	}
	if err := validateSchedule(&in); err != nil {
		return models.Schedule{}, err
	}
	if _, err := s.Schedules.GetByID(id); err != nil {
		return models.Schedule{}, err
	}
	updated, err := s.Schedules.Update(id, in)
	if err != nil {
		return models.Schedule{}, err
	}
	utils.LogEvent(s.RequestID, "schedule", "update", fmt.Sprintf("id=%d", id))
	return updated, nil
}

func (s ScheduleService) Delete(id int64) error {
	if err := s.Schedules.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "schedule", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

func validateSchedule(in *models.Schedule) error {
	in.OperatorName = utils.TrimOrEmpty(in.OperatorName)
	in.Origin = utils.TrimOrEmpty(in.Origin)
	in.Destination = utils.TrimOrEmpty(in.Destination)
	in.DepartureTime = utils.TrimOrEmpty(in.DepartureTime)
	in.StartDate = utils.TrimOrEmpty(in.StartDate)
	in.EndDate = utils.TrimOrEmpty(in.EndDate)

	required := map[string]string{
		"operatorName":  in.OperatorName,
		"origin":        in.Origin,
		"destination":   in.Destination,
		"acType":        in.ACType,
		"seatClass":     in.SeatClass,
		"departureTime": in.DepartureTime,
		"startDate":     in.StartDate,
		"endDate":       in.EndDate,
	}
	for field, val := range required {
		if val == "" {
			return domain.ValidationError{Field: field, Msg: "is required"}
		}
	}

	if in.ACType != models.ACTypeAC && in.ACType != models.ACTypeNonAC {
		return domain.ValidationError{Field: "acType", Msg: "must be AC or Non-AC"}
	}
	if in.SeatClass != models.SeatClassSeater && in.SeatClass != models.SeatClassSleeper {
		return domain.ValidationError{Field: "seatClass", Msg: "must be Seater or Sleeper"}
	}
	if in.TotalSeats <= 0 {
		return domain.ValidationError{Field: "totalSeats", Msg: "must be positive"}
	}
	if in.Fare < 0 {
		return domain.ValidationError{Field: "fare", Msg: "cannot be negative"}
	}
	if _, err := time.Parse("15:04", in.DepartureTime); err != nil {
		return domain.ValidationError{Field: "departureTime", Msg: "must be HH:MM", Err: err}
	}

	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return domain.ValidationError{Field: "startDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return domain.ValidationError{Field: "endDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return domain.ValidationError{Field: "endDate", Msg: "must not be before startDate"}
	}
	return nil
}
