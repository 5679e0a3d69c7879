package handlers

import (
	"net/http"

	"bustix/internal/domain/models"
	"bustix/internal/http/middleware"
	"bustix/internal/services"

	"github.com/gin-gonic/gin"
)

func scheduleService(c *gin.Context) services.ScheduleService {
	return services.ScheduleService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/schedules
func CreateSchedule(c *gin.Context) {
	var req models.Schedule
	if !BindJSONOrError(c, &req) {
		return
	}
	req.ID = 0

	created, err := scheduleService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/schedules
func ListSchedules(c *gin.Context) {
	out, err := scheduleService(c).ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/schedules/:id
func GetSchedule(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	schedule, err := scheduleService(c).GetWithLedger(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// PUT /api/schedules/:id
// Full replace of the schedule fields. Any bookedSeats content in the body is
// rejected; the ledger only changes through booking, release and reset.
func UpdateSchedule(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req models.Schedule
	if !BindJSONOrError(c, &req) {
		return
	}

	updated, err := scheduleService(c).Update(id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/schedules/:id
func DeleteSchedule(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := scheduleService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}
