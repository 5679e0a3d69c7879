package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "bustix/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

var scheduleCols = []string{
	"id", "operator_name", "origin", "destination", "ac_type", "seat_class",
	"total_seats", "fare", "departure_time", "start_date", "end_date",
	"created_at", "updated_at",
}

func seaterRow() *sqlmock.Rows {
	return sqlmock.NewRows(scheduleCols).AddRow(
		1, "Kaveri Travels", "Bengaluru", "Chennai", "AC", "Seater",
		40, 550, "21:30", "2025-10-01", "2025-12-31",
		"2025-09-01 10:00:00", "2025-09-01 10:00:00",
	)
}

func newBookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	intconfig.DB = db

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/schedules/:id/book", BookSeats)
	r.PUT("/api/schedules/reset-daily", ResetDaily)
	r.PUT("/api/schedules/:id", UpdateSchedule)

	return r, mock, func() {
		intconfig.DB = nil
		db.Close()
	}
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookEndpointSuccess(t *testing.T) {
	r, mock, done := newBookingRouter(t)
	defer done()

	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(1)).
		WillReturnRows(seaterRow())
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(1), "2025-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}))
	mock.ExpectExec("INSERT INTO schedule_seats").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO schedule_seats").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	w := doJSON(r, http.MethodPost, "/api/schedules/1/book",
		`{"seatIds":["S1","S2"],"date":"2025-11-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		BookedSeats []string `json:"bookedSeats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.BookedSeats) != 2 {
		t.Fatalf("bookedSeats = %v, want 2 seats", body.BookedSeats)
	}
}

func TestBookEndpointConflictNamesSeats(t *testing.T) {
	r, mock, done := newBookingRouter(t)
	defer done()

	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(1)).
		WillReturnRows(seaterRow())
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(1), "2025-11-01").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("S1").AddRow("S2"))
	mock.ExpectRollback()

	w := doJSON(r, http.MethodPost, "/api/schedules/1/book",
		`{"seatIds":["S2","S3"],"date":"2025-11-01"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}

	var body struct {
		Code    string `json:"code"`
		Details struct {
			Seats []string `json:"seats"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Code != "seat_conflict" {
		t.Fatalf("code = %q, want seat_conflict", body.Code)
	}
	if len(body.Details.Seats) != 1 || body.Details.Seats[0] != "S2" {
		t.Fatalf("details.seats = %v, want [S2]", body.Details.Seats)
	}
}

func TestBookEndpointUnknownSchedule(t *testing.T) {
	r, mock, done := newBookingRouter(t)
	defer done()

	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	w := doJSON(r, http.MethodPost, "/api/schedules/9/book",
		`{"seatIds":["S1"],"date":"2025-11-01"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestBookEndpointEmptySelection(t *testing.T) {
	r, mock, done := newBookingRouter(t)
	defer done()

	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(1)).
		WillReturnRows(seaterRow())

	w := doJSON(r, http.MethodPost, "/api/schedules/1/book",
		`{"seatIds":[],"date":"2025-11-01"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestResetDailyEndpoint(t *testing.T) {
	r, mock, done := newBookingRouter(t)
	defer done()

	mock.ExpectExec("DELETE s FROM schedule_seats").
		WillReturnResult(sqlmock.NewResult(0, 4))

	w := doJSON(r, http.MethodPut, "/api/schedules/reset-daily", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Cleared int64 `json:"cleared"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Cleared != 4 {
		t.Fatalf("cleared = %d, want 4", body.Cleared)
	}
}

func TestUpdateEndpointRejectsLedgerOverwrite(t *testing.T) {
	r, _, done := newBookingRouter(t)
	defer done()

	w := doJSON(r, http.MethodPut, "/api/schedules/1",
		`{"operatorName":"Kaveri Travels","origin":"Bengaluru","destination":"Chennai",
		  "acType":"AC","seatClass":"Seater","totalSeats":40,"fare":550,
		  "departureTime":"21:30","startDate":"2025-10-01","endDate":"2025-12-31",
		  "bookedSeats":{"2025-11-01":["S1"]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "bookedSeats") {
		t.Fatalf("error should name bookedSeats: %s", w.Body.String())
	}
}
