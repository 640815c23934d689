// internal/wire/wire.go
package wire

import (
	"net/http"

	"hospital-booking/internal/adaptor"
	"hospital-booking/internal/data/repository"
	"hospital-booking/internal/gateway"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/database"
	"hospital-booking/pkg/middleware"
	"hospital-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	gateways *gateway.Registry,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// Initialize services dan handlers
	service := usecase.NewService(db, repo, gateways, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireDoctor(r, handler.Doctor)
	wireBooking(r, handler.Booking)
	wireAdmin(r, handler.Doctor, handler.Transaction)
	wireHospital(r, handler.Hospital)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
