package repositories

import (
	"database/sql"

	intconfig "bustix/internal/config"
	"bustix/internal/domain"
	"bustix/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleColumns = `
	id,
	operator_name,
	origin,
	destination,
	ac_type,
	seat_class,
	total_seats,
	fare,
	departure_time,
	DATE_FORMAT(start_date, '%Y-%m-%d'),
	DATE_FORMAT(end_date, '%Y-%m-%d'),
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),
	DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')`

func scanSchedule(row interface{ Scan(...any) error }) (models.Schedule, error) {
	var s models.Schedule
	err := row.Scan(
		&s.ID,
		&s.OperatorName,
		&s.Origin,
		&s.Destination,
		&s.ACType,
		&s.SeatClass,
		&s.TotalSeats,
		&s.Fare,
		&s.DepartureTime,
		&s.StartDate,
		&s.EndDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r ScheduleRepository) Create(s models.Schedule) (models.Schedule, error) {
	res, err := r.db().Exec(`
		INSERT INTO schedules
			(operator_name, origin, destination, ac_type, seat_class, total_seats, fare, departure_time, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.OperatorName, s.Origin, s.Destination, s.ACType, s.SeatClass, s.TotalSeats, s.Fare, s.DepartureTime, s.StartDate, s.EndDate)
	if err != nil {
		return models.Schedule{}, domain.InternalError{Msg: "failed to insert schedule", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Schedule{}, domain.InternalError{Msg: "failed to read schedule id", Err: err}
	}
	return r.GetByID(id)
}

func (r ScheduleRepository) GetByID(id int64) (models.Schedule, error) {
	row := r.db().QueryRow(`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)
	s, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return models.Schedule{}, domain.NotFoundError{Resource: "schedule"}
	}
	if err != nil {
		return models.Schedule{}, domain.InternalError{Msg: "failed to query schedule", Err: err}
	}
	return s, nil
}

// ListActive returns schedules whose validity window has not ended yet.
func (r ScheduleRepository) ListActive() ([]models.Schedule, error) {
	rows, err := r.db().Query(`SELECT ` + scheduleColumns + ` FROM schedules WHERE end_date >= CURDATE() ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list schedules", Err: err}
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan schedule", Err: err}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) Update(id int64, s models.Schedule) (models.Schedule, error) {
	_, err := r.db().Exec(`
		UPDATE schedules SET
			operator_name = ?,
			origin = ?,
			destination = ?,
			ac_type = ?,
			seat_class = ?,
			total_seats = ?,
			fare = ?,
			departure_time = ?,
			start_date = ?,
			end_date = ?
		WHERE id = ?
	`, s.OperatorName, s.Origin, s.Destination, s.ACType, s.SeatClass, s.TotalSeats, s.Fare, s.DepartureTime, s.StartDate, s.EndDate, id)
	if err != nil {
		return models.Schedule{}, domain.InternalError{Msg: "failed to update schedule", Err: err}
	}

	// RowsAffected is 0 both for a missing row and a no-op update; the
	// follow-up read settles which one it was.
	return r.GetByID(id)
}

// Delete removes the schedule together with its seat ledger.
func (r ScheduleRepository) Delete(id int64) error {
	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Msg: "failed to begin delete", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedule_seats WHERE schedule_id = ?`, id); err != nil {
		return domain.InternalError{Msg: "failed to clear seat ledger", Err: err}
	}

	res, err := tx.Exec(`DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete schedule", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "failed to read delete result", Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "schedule"}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "failed to commit delete", Err: err}
	}
	return nil
}
