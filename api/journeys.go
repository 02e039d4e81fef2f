package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type JourneyHandler struct {
	service booking.BookingUseCase
}

func NewJourneyHandler(service booking.BookingUseCase) *JourneyHandler {
	return &JourneyHandler{service: service}
}

func (h *JourneyHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

func (h *JourneyHandler) list(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	journeys, err := h.service.ListBookableJourneys(c.Request.Context(), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, journeys)
}
