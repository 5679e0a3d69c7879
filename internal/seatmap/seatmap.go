// Package seatmap resolves the addressable seat identifiers for a schedule.
//
// Seater coaches expose S1..S{totalSeats}. Sleeper coaches always expose the
// fixed 20-berth layout U1..U10 + L1..L10; the schedule's totalSeats is kept
// as descriptive metadata only and never used to address berths.
package seatmap

import (
	"fmt"
	"strings"

	"bustix/internal/domain"
	"bustix/internal/domain/models"
)

const sleeperDeckSize = 10

// Layout returns the ordered valid seat codes for a seat class.
func Layout(seatClass string, totalSeats int) ([]string, error) {
	switch seatClass {
	case models.SeatClassSeater:
		if totalSeats <= 0 {
			return nil, domain.ValidationError{Field: "totalSeats", Msg: "must be positive"}
		}
		out := make([]string, 0, totalSeats)
		for i := 1; i <= totalSeats; i++ {
			out = append(out, fmt.Sprintf("S%d", i))
		}
		return out, nil
	case models.SeatClassSleeper:
		out := make([]string, 0, 2*sleeperDeckSize)
		for i := 1; i <= sleeperDeckSize; i++ {
			out = append(out, fmt.Sprintf("U%d", i))
		}
		for i := 1; i <= sleeperDeckSize; i++ {
			out = append(out, fmt.Sprintf("L%d", i))
		}
		return out, nil
	default:
		return nil, domain.ValidationError{Field: "seatClass", Msg: "must be Seater or Sleeper"}
	}
}

// Capacity is the number of addressable seats for a class. For Sleeper this is
// the fixed berth count, regardless of the schedule's totalSeats.
func Capacity(seatClass string, totalSeats int) int {
	if seatClass == models.SeatClassSleeper {
		return 2 * sleeperDeckSize
	}
	return totalSeats
}

// Validate checks that every requested seat code belongs to the layout and
// that the selection is non-empty and free of duplicates.
func Validate(seatClass string, totalSeats int, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return domain.ValidationError{Field: "seatIds", Msg: "selection is empty"}
	}

	layout, err := Layout(seatClass, totalSeats)
	if err != nil {
		return err
	}
	valid := make(map[string]struct{}, len(layout))
	for _, code := range layout {
		valid[code] = struct{}{}
	}

	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		code := strings.ToUpper(strings.TrimSpace(id))
		if code == "" {
			return domain.ValidationError{Field: "seatIds", Msg: "empty seat id"}
		}
		if _, ok := valid[code]; !ok {
			return domain.ValidationError{Field: "seatIds", Msg: fmt.Sprintf("unknown seat %q", id)}
		}
		if _, dup := seen[code]; dup {
			return domain.ValidationError{Field: "seatIds", Msg: fmt.Sprintf("duplicate seat %q", id)}
		}
		seen[code] = struct{}{}
	}
	return nil
}

// Normalize uppercases and trims seat ids without reordering them.
func Normalize(seatIDs []string) []string {
	out := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
