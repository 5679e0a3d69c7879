package models

// Seat classes and AC types accepted on schedules.
const (
	SeatClassSeater  = "Seater"
	SeatClassSleeper = "Sleeper"

	ACTypeAC    = "AC"
	ACTypeNonAC = "Non-AC"
)

// SeatLedger maps travel date (YYYY-MM-DD) to the sorted booked seat codes.
type SeatLedger map[string][]string

// Schedule is one bus route/fare/capacity record with its validity window.
// Dates are YYYY-MM-DD strings; DepartureTime is HH:MM.
type Schedule struct {
	ID            int64      `json:"id"`
	OperatorName  string     `json:"operatorName"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	ACType        string     `json:"acType"`
	SeatClass     string     `json:"seatClass"`
	TotalSeats    int        `json:"totalSeats"`
	Fare          int64      `json:"fare"`
	DepartureTime string     `json:"departureTime"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	BookedSeats   SeatLedger `json:"bookedSeats,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
}

// Ticket is a projection for display/export; it is never persisted.
type Ticket struct {
	Serial       string   `json:"serial"`
	OperatorName string   `json:"operatorName"`
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Seats        []string `json:"seats"`
	TotalPrice   int64    `json:"totalPrice"`
}
