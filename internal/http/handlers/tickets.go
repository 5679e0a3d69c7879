package handlers

import (
	"net/http"

	"bustix/internal/http/middleware"
	"bustix/internal/services"
	"bustix/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules/:id/ticket?date=YYYY-MM-DD&seats=S1,S2
// Renders an e-ticket PDF for seats already booked on that date.
func GetTicketPDF(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	date := utils.TrimOrEmpty(c.Query("date"))
	seats := utils.SplitSeatList(c.Query("seats"))
	if date == "" || len(seats) == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "date and seats query params are required", nil)
		return
	}

	svc := services.TicketService{
		SignSecret: string(jwtSecret),
		RequestID:  middleware.GetRequestID(c),
	}

	ticket, err := svc.BuildTicket(id, date, seats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdf, filename, err := svc.RenderPDF(ticket)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
