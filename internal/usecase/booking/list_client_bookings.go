package booking

import (
	"context"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/dto"
)

type ListClientBookings struct {
	repo domain.Repository
}

func NewListClientBookings(repo domain.Repository) *ListClientBookings {
	return &ListClientBookings{repo: repo}
}

func (uc *ListClientBookings) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:             b.ID,
			ConsultantName: b.Consultant.Name,
			StartAt:        b.StartAt,
			EndAt:          b.EndAt,
			Status:         b.Status,
			Price:          b.Price,
			ExpiresAt:      b.ExpiresAt,
		})
	}

	return out, nil
}
