package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/railbooking/internal/service/schedules"
	"github.com/gin-gonic/gin"
)

type TrainHandler struct {
	service schedules.ScheduleAdminUseCase
}

type scheduleTrainRequest struct {
	TrainNumber   string `json:"train_number" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

func NewTrainHandler(service schedules.ScheduleAdminUseCase) *TrainHandler {
	return &TrainHandler{service: service}
}

func (h *TrainHandler) Register(router *gin.RouterGroup) {
	router.POST("/trains", h.addTrain)
	router.GET("/trains", h.listTrains)
	router.DELETE("/trains/:number", h.deleteTrain)
	router.POST("/schedules", h.scheduleTrain)
}

func (h *TrainHandler) addTrain(c *gin.Context) {
	var req schedules.AddTrainInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	train, err := h.service.AddTrain(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, train)
}

func (h *TrainHandler) listTrains(c *gin.Context) {
	trains, err := h.service.ListTrains(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trains)
}

func (h *TrainHandler) deleteTrain(c *gin.Context) {
	if err := h.service.DeleteTrain(c.Request.Context(), c.Param("number")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrainHandler) scheduleTrain(c *gin.Context) {
	var req scheduleTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
		return
	}
	schedule, err := h.service.ScheduleTrain(c.Request.Context(), req.TrainNumber, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}
