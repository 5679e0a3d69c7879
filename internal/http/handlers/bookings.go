package handlers

import (
	"net/http"

	"bustix/internal/http/middleware"
	"bustix/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type bookRequest struct {
	SeatIDs []string `json:"seatIds"`
	Date    string   `json:"date"`
}

// POST /api/schedules/:id/book
func BookSeats(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req bookRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booked, err := bookingService(c).BookSeats(id, req.Date, req.SeatIDs, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookedSeats": booked})
}

type releaseRequest struct {
	SeatIDs []string `json:"seatIds"`
	Date    string   `json:"date"`
}

// POST /api/schedules/:id/release
func ReleaseSeats(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req releaseRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	released, err := bookingService(c).ReleaseSeats(id, req.Date, req.SeatIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": released})
}

// PUT /api/schedules/reset-daily
func ResetDaily(c *gin.Context) {
	cleared, err := bookingService(c).ResetDaily()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "daily reset done",
		"cleared": cleared,
	})
}
