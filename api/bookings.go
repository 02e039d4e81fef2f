package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookTicketRequest struct {
	ScheduleID int64  `json:"schedule_id" binding:"required"`
	SeatClass  string `json:"seat_class" binding:"required"`
	NumSeats   int    `json:"num_seats" binding:"required"`
}

type bookingResponse struct {
	TicketID       string `json:"ticket_id"`
	Username       string `json:"username"`
	ScheduleID     int64  `json:"schedule_id"`
	SeatClass      string `json:"seat_class"`
	NumSeats       int    `json:"num_seats"`
	TotalFarePaise int64  `json:"total_fare_paise"`
	BookedAt       string `json:"booked_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.GET("/", h.myBookings)
	router.DELETE("/:ticket_id", h.cancel)
}

func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/bookings", h.allBookings)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Book(c.Request.Context(), booking.BookTicketInput{
		ScheduleID: req.ScheduleID,
		Username:   c.GetString(usernameKey),
		SeatClass:  req.SeatClass,
		NumSeats:   req.NumSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		TicketID:       created.TicketID,
		Username:       created.Username,
		ScheduleID:     created.ScheduleID,
		SeatClass:      string(created.SeatClass),
		NumSeats:       created.NumSeats,
		TotalFarePaise: created.TotalFarePaise,
		BookedAt:       created.BookedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	ticketID := c.Param("ticket_id")
	if err := h.service.Cancel(c.Request.Context(), ticketID, c.GetString(usernameKey)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket_id": ticketID, "status": "cancelled"})
}

func (h *BookingHandler) myBookings(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), c.GetString(usernameKey))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) allBookings(c *gin.Context) {
	bookings, err := h.service.AllBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":            bookings,
		"total_revenue_paise": totalRevenue(bookings),
	})
}

func totalRevenue(bookings []domain.BookingView) int64 {
	var total int64
	for _, b := range bookings {
		total += b.TotalFarePaise
	}
	return total
}
