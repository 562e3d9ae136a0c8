package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// CalendarGormRepository reads the consultant-management side's
// working-hour and holiday tables. The booking core never writes them.
type CalendarGormRepository struct {
	db *gorm.DB
}

func NewCalendarGormRepository(db *gorm.DB) *CalendarGormRepository {
	return &CalendarGormRepository{db: db}
}

func (r *CalendarGormRepository) GetActiveWorkingHours(
	ctx context.Context,
	consultantID uint,
	weekday int,
) ([]models.WorkingHour, error) {

	var hours []models.WorkingHour
	if err := r.db.WithContext(ctx).
		Where("consultant_id = ? AND weekday = ? AND active = ?", consultantID, weekday, true).
		Order("start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *CalendarGormRepository) IsHoliday(
	ctx context.Context,
	consultantID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Holiday{}).
		Where("consultant_id = ? AND date = ?", consultantID, date.Format("2006-01-02")).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

// CatalogGormRepository resolves duration/buffer/price for a bookable
// reference out of the service catalog, or the consultant's session
// defaults for direct bookings.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ResolveBookable(
	ctx context.Context,
	consultantID uint,
	ref domain.BookableRef,
) (*domain.BookableInfo, error) {

	switch ref.Kind {
	case domain.BookableConsultant:
		var consultant models.Consultant
		if err := r.db.WithContext(ctx).First(&consultant, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("consultant_not_found")
			}
			return nil, err
		}
		return &domain.BookableInfo{
			DurationMinutes: consultant.SessionMinutes,
			BufferMinutes:   consultant.BufferMinutes,
			Price:           consultant.SessionPrice,
		}, nil

	case domain.BookableService:
		var service models.ConsultantService
		if err := r.db.WithContext(ctx).
			Where("id = ? AND consultant_id = ? AND active = ?", ref.ID, consultantID, true).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("service_not_found")
			}
			return nil, err
		}
		return &domain.BookableInfo{
			DurationMinutes: service.DurationMin,
			BufferMinutes:   service.BufferMin,
			Price:           service.Price,
		}, nil

	default:
		return nil, httperr.ErrValidation("invalid_bookable")
	}
}

// Compile-time checks
var (
	_ domain.Calendar = (*CalendarGormRepository)(nil)
	_ domain.Catalog  = (*CatalogGormRepository)(nil)
)
