package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/railbooking/api"
	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/auth"
	"github.com/Domenick1991/railbooking/internal/service/booking"
	"github.com/Domenick1991/railbooking/internal/service/schedules"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, adminSvc schedules.ScheduleAdminUseCase, authSvc auth.AuthUseCase) error {
	router := NewRouter(bookingSvc, adminSvc, authSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(bookingSvc booking.BookingUseCase, adminSvc schedules.ScheduleAdminUseCase, authSvc auth.AuthUseCase) *gin.Engine {
	router := gin.Default()

	authHandler := api.NewAuthHandler(authSvc)
	journeyHandler := api.NewJourneyHandler(bookingSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	trainHandler := api.NewTrainHandler(adminSvc)

	authHandler.Register(router.Group("/auth"))
	journeyHandler.Register(router.Group("/journeys"))

	bookingsGroup := router.Group("/bookings", api.RequireUser(authSvc))
	bookingHandler.Register(bookingsGroup)

	adminGroup := router.Group("/admin", api.RequireUser(authSvc), api.RequireAdmin())
	trainHandler.Register(adminGroup)
	bookingHandler.RegisterAdmin(adminGroup)

	return router
}
