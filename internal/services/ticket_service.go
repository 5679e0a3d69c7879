package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"bustix/internal/domain"
	"bustix/internal/domain/models"
	"bustix/internal/repositories"
	"bustix/internal/seatmap"
	"bustix/internal/utils"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// TicketService projects booked seats into a ticket and renders it as a PDF
// with a signed QR payload for gate-side verification. Tickets are derived,
// never persisted.
type TicketService struct {
	Schedules  repositories.ScheduleRepository
	Ledger     repositories.SeatLedgerRepository
	SignSecret string
	RequestID  string
}

// BuildTicket verifies the seats are actually booked for the date and returns
// the ticket projection (total = fare x seat count).
func (s TicketService) BuildTicket(scheduleID int64, date string, seatIDs []string) (models.Ticket, error) {
	schedule, err := s.Schedules.GetByID(scheduleID)
	if err != nil {
		return models.Ticket{}, err
	}

	seats := seatmap.Normalize(seatIDs)
	if err := seatmap.Validate(schedule.SeatClass, schedule.TotalSeats, seats); err != nil {
		return models.Ticket{}, err
	}
	if _, err := utils.ParseDate(date); err != nil {
		return models.Ticket{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	booked, err := s.Ledger.BookedFor(scheduleID, date)
	if err != nil {
		return models.Ticket{}, err
	}
	have := make(map[string]struct{}, len(booked))
	for _, code := range booked {
		have[code] = struct{}{}
	}
	for _, code := range seats {
		if _, ok := have[code]; !ok {
			return models.Ticket{}, domain.ValidationError{
				Field: "seatIds",
				Msg:   fmt.Sprintf("seat %s is not booked for %s", code, date),
			}
		}
	}

	return models.Ticket{
		Serial:       uuid.NewString(),
		OperatorName: schedule.OperatorName,
		Origin:       schedule.Origin,
		Destination:  schedule.Destination,
		Date:         date,
		Time:         schedule.DepartureTime,
		Seats:        seats,
		TotalPrice:   schedule.Fare * int64(len(seats)),
	}, nil
}

// RenderPDF produces the e-ticket PDF and a download filename.
func (s TicketService) RenderPDF(t models.Ticket) ([]byte, string, error) {
	qrPNG, err := qrcode.Encode(s.qrPayload(t), qrcode.Medium, 256)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to generate QR code", Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Operator   : %s", t.OperatorName),
		fmt.Sprintf("Route      : %s -> %s", t.Origin, t.Destination),
		fmt.Sprintf("Date       : %s", t.Date),
		fmt.Sprintf("Departure  : %s", t.Time),
		fmt.Sprintf("Seats      : %s", strings.Join(t.Seats, ", ")),
		fmt.Sprintf("Total      : %d", t.TotalPrice),
		fmt.Sprintf("Ticket No. : %s", t.Serial),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket with the QR code at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render ticket PDF", Err: err}
	}

	utils.LogEvent(s.RequestID, "ticket", "render_pdf",
		fmt.Sprintf("serial=%s seats=%d", t.Serial, len(t.Seats)))

	filename := fmt.Sprintf("ticket_%s_%s.pdf", safeFilenamePart(t.OperatorName), t.Date)
	return buf.Bytes(), filename, nil
}

// qrPayload builds "serial|date|seats|timestamp|signature" with an HMAC so a
// scanned ticket can be checked without a DB round trip.
func (s TicketService) qrPayload(t models.Ticket) string {
	data := fmt.Sprintf("%s|%s|%s|%d", t.Serial, t.Date, strings.Join(t.Seats, ","), time.Now().Unix())
	h := hmac.New(sha256.New, []byte(s.SignSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

func safeFilenamePart(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(s))
	return strings.Trim(out, "-")
}
