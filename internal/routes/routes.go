package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HamidBoasidah/namaa-sub001/internal/app"
	"github.com/HamidBoasidah/namaa-sub001/internal/audit"
	"github.com/HamidBoasidah/namaa-sub001/internal/cache"
	"github.com/HamidBoasidah/namaa-sub001/internal/clock"
	"github.com/HamidBoasidah/namaa-sub001/internal/config"
	"github.com/HamidBoasidah/namaa-sub001/internal/handlers"
	infraRepo "github.com/HamidBoasidah/namaa-sub001/internal/infra/repository"
	"github.com/HamidBoasidah/namaa-sub001/internal/middleware"
	ucBooking "github.com/HamidBoasidah/namaa-sub001/internal/usecase/booking"
)

const availabilityCacheTTL = 30 * time.Second

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) *app.Sweeper {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	calendarRepo := infraRepo.NewCalendarGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	availCache := cache.New(cfg.RedisAddr, availabilityCacheTTL)
	clk := clock.Real{}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createPendingUC := ucBooking.NewCreatePending(
		bookingRepo,
		calendarRepo,
		catalogRepo,
		availCache,
		auditDispatcher,
		clk,
		cfg,
	)

	confirmUC := ucBooking.NewConfirm(
		bookingRepo,
		availCache,
		auditDispatcher,
		clk,
	)

	cancelUC := ucBooking.NewCancel(
		bookingRepo,
		availCache,
		auditDispatcher,
		clk,
	)

	completeUC := ucBooking.NewComplete(
		bookingRepo,
		auditDispatcher,
		clk,
	)

	listSlotsUC := ucBooking.NewListSlots(
		bookingRepo,
		calendarRepo,
		availCache,
		clk,
		cfg,
	)

	checkSlotUC := ucBooking.NewCheckSlot(bookingRepo, clk)

	listMineUC := ucBooking.NewListClientBookings(bookingRepo)

	sweepUC := ucBooking.NewExpireSweep(bookingRepo, clk)
	sweeper := app.NewSweeper(sweepUC, cfg.SweepInterval(), logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		bookingRepo,
		catalogRepo,
		listSlotsUC,
		checkSlotUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		createPendingUC,
		confirmUC,
		cancelUC,
		completeUC,
		listMineUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/availability", availabilityHandler.ListSlots)
			publicAPI.GET("/:slug/availability/check", availabilityHandler.CheckSlot)
		}

		// ------------------------------
		// CLIENT
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.POST("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				admin.PATCH("/bookings/:id/cancel", bookingHandler.AdminCancel)
				admin.PATCH("/bookings/:id/complete", bookingHandler.AdminComplete)
			}
		}
	}

	return sweeper
}
