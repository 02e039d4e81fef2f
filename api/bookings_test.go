package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ListBookableJourneys(ctx context.Context, asOf time.Time) ([]domain.JourneyView, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyView), args.Error(1)
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookTicketInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, ticketID, username string) error {
	args := m.Called(ctx, ticketID, username)
	return args.Error(0)
}

func (m *MockBookingUseCase) MyBookings(ctx context.Context, username string) ([]domain.BookingView, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) AllBookings(ctx context.Context) ([]domain.BookingView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(usernameKey, username)
		c.Next()
	}
}

func newBookingRouter(service booking.BookingUseCase, username string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewBookingHandler(service)
	handler.Register(router.Group("/bookings", asUser(username)))
	handler.RegisterAdmin(router.Group("/admin", asUser(username)))
	return router
}

func TestBookingHandler_Book_Created(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "alice")

	booked := &domain.Booking{
		TicketID:       "TKT123456",
		Username:       "alice",
		ScheduleID:     1,
		SeatClass:      domain.SeatClassAC,
		NumSeats:       4,
		TotalFarePaise: 200000,
		BookedAt:       time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("Book", mock.Anything, booking.BookTicketInput{ScheduleID: 1, Username: "alice", SeatClass: "AC", NumSeats: 4}).
		Return(booked, nil).Once()

	body, _ := json.Marshal(map[string]interface{}{"schedule_id": 1, "seat_class": "AC", "num_seats": 4})
	req := httptest.NewRequest(http.MethodPost, "/bookings/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "TKT123456", resp.TicketID)
	assert.Equal(t, int64(200000), resp.TotalFarePaise)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Book_InsufficientSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "bob")

	mockService.On("Book", mock.Anything, mock.AnythingOfType("booking.BookTicketInput")).
		Return(nil, domain.ErrInsufficientSeats).Once()

	body, _ := json.Marshal(map[string]interface{}{"schedule_id": 1, "seat_class": "AC", "num_seats": 7})
	req := httptest.NewRequest(http.MethodPost, "/bookings/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not enough seats")
}

func TestBookingHandler_Book_BadPayload(t *testing.T) {
	router := newBookingRouter(&MockBookingUseCase{}, "alice")

	req := httptest.NewRequest(http.MethodPost, "/bookings/", bytes.NewReader([]byte(`{"seat_class":"AC"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_Cancel_OK(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "alice")

	mockService.On("Cancel", mock.Anything, "TKT123456", "alice").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/TKT123456", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "alice")

	mockService.On("Cancel", mock.Anything, "TKT000000", "alice").Return(domain.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/TKT000000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_Cancel_NotOwner(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "mallory")

	mockService.On("Cancel", mock.Anything, "TKT123456", "mallory").Return(domain.ErrNotOwner).Once()

	req := httptest.NewRequest(http.MethodDelete, "/bookings/TKT123456", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingHandler_MyBookings(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "alice")

	views := []domain.BookingView{{TicketID: "TKT123456", Username: "alice", TrainName: "Mumbai Rajdhani", NumSeats: 4, TotalFarePaise: 200000}}
	mockService.On("MyBookings", mock.Anything, "alice").Return(views, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/bookings/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TKT123456")
}

func TestBookingHandler_AllBookings_Revenue(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, "admin")

	views := []domain.BookingView{
		{TicketID: "TKT111111", TotalFarePaise: 200000},
		{TicketID: "TKT222222", TotalFarePaise: 40000},
	}
	mockService.On("AllBookings", mock.Anything).Return(views, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalRevenuePaise int64 `json:"total_revenue_paise"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(240000), resp.TotalRevenuePaise)
}
