package repositories

import (
	"database/sql"
	"errors"
	"sort"
	"strings"

	intconfig "bustix/internal/config"
	"bustix/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// SeatLedgerRepository owns the schedule_seats rows. Booking is the only
// write path that adds rows; release and reset are the only ones that remove
// them short of deleting the schedule itself.
type SeatLedgerRepository struct {
	DB *sql.DB
}

func (r SeatLedgerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const mysqlErrDuplicateEntry = 1062

// BookedFor returns the sorted booked seat codes for one schedule+date.
func (r SeatLedgerRepository) BookedFor(scheduleID int64, date string) ([]string, error) {
	rows, err := r.db().Query(`
		SELECT seat_code FROM schedule_seats
		WHERE schedule_id = ? AND travel_date = ?
		ORDER BY seat_code ASC
	`, scheduleID, date)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to read seat ledger", Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan seat ledger", Err: err}
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

// LedgerFor projects all ledger rows of a schedule into date -> seat codes.
func (r SeatLedgerRepository) LedgerFor(scheduleID int64) (map[string][]string, error) {
	rows, err := r.db().Query(`
		SELECT DATE_FORMAT(travel_date, '%Y-%m-%d'), seat_code FROM schedule_seats
		WHERE schedule_id = ?
		ORDER BY travel_date ASC, seat_code ASC
	`, scheduleID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to read seat ledger", Err: err}
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var date, code string
		if err := rows.Scan(&date, &code); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan seat ledger", Err: err}
		}
		out[date] = append(out[date], code)
	}
	return out, rows.Err()
}

// Book claims seats for one schedule+date inside a single transaction. The
// existing rows for the key are read under FOR UPDATE so two overlapping
// requests serialize; the unique key on (schedule_id, travel_date, seat_code)
// backstops the race at insert time. On success it returns the full booked
// set for the date, already containing the new seats.
func (r SeatLedgerRepository) Book(scheduleID int64, date string, seatIDs []string, bookedBy int64) ([]string, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to begin booking", Err: err}
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT seat_code FROM schedule_seats
		WHERE schedule_id = ? AND travel_date = ?
		FOR UPDATE
	`, scheduleID, date)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to lock seat ledger", Err: err}
	}

	existing := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return nil, domain.InternalError{Msg: "failed to scan seat ledger", Err: err}
		}
		existing = append(existing, code)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, domain.InternalError{Msg: "failed to read seat ledger", Err: err}
	}
	rows.Close()

	if overlap := intersect(existing, seatIDs); len(overlap) > 0 {
		return nil, domain.ConflictError{Resource: "seats", Seats: overlap}
	}

	for _, code := range seatIDs {
		if _, err := tx.Exec(`
			INSERT INTO schedule_seats (schedule_id, travel_date, seat_code, booked_by)
			VALUES (?, ?, ?, ?)
		`, scheduleID, date, code, bookedBy); err != nil {
			if isDuplicateEntry(err) {
				return nil, domain.ConflictError{Resource: "seats", Seats: []string{code}}
			}
			return nil, domain.InternalError{Msg: "failed to record booking", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Msg: "failed to commit booking", Err: err}
	}

	full := append(append([]string{}, existing...), seatIDs...)
	sort.Strings(full)
	return full, nil
}

// Release removes specific seats for a schedule+date. Seats that were not
// booked are skipped; the count of actually released seats is returned.
func (r SeatLedgerRepository) Release(scheduleID int64, date string, seatIDs []string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",")
	args := []any{scheduleID, date}
	for _, code := range seatIDs {
		args = append(args, code)
	}

	res, err := r.db().Exec(`
		DELETE FROM schedule_seats
		WHERE schedule_id = ? AND travel_date = ? AND seat_code IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to release seats", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read release result", Err: err}
	}
	return n, nil
}

// ResetDate clears the ledger rows of every active schedule for one date.
// A single DELETE keeps it idempotent and safe next to in-flight bookings
// for other dates.
func (r SeatLedgerRepository) ResetDate(date string) (int64, error) {
	res, err := r.db().Exec(`
		DELETE s FROM schedule_seats s
		JOIN schedules b ON b.id = s.schedule_id
		WHERE s.travel_date = ? AND b.end_date >= CURDATE()
	`, date)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to reset seat ledger", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read reset result", Err: err}
	}
	return n, nil
}

func intersect(existing, requested []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, code := range existing {
		have[code] = struct{}{}
	}
	overlap := []string{}
	for _, code := range requested {
		if _, ok := have[code]; ok {
			overlap = append(overlap, code)
		}
	}
	return overlap
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}
