package response

import (
	"time"

	"event-bookings/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	BookingID          string    `json:"bookingId" copier:"ID"`
	InvoiceID          string    `json:"invoiceId"`
	UserID             string    `json:"userId"`
	CustomerName       string    `json:"customerName"`
	EventID            string    `json:"eventId"`
	EventName          string    `json:"eventName"`
	CategoryID         string    `json:"categoryId"`
	CategoryName       string    `json:"categoryName"`
	TicketCategoryID   string    `json:"ticketCategoryId"`
	TicketCategoryName string    `json:"ticketCategoryName"`
	BookingDate        time.Time `json:"bookingDate"`
	Price              float64   `json:"price" copier:"-"`
	PriceCents         int64     `json:"priceCents"`
	Quantity           int       `json:"quantity"`
	TotalAmount        float64   `json:"totalAmount" copier:"-"`
	TotalAmountCents   int64     `json:"totalAmountCents"`
	EVoucher           *string   `json:"eVoucher,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	res.Price = centsToAmount(v.PriceCents)
	res.TotalAmount = centsToAmount(v.TotalAmountCents)
	return res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		r, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type StatusStatsResponse struct {
	Status       string  `json:"status"`
	Bookings     int64   `json:"bookings"`
	Tickets      int64   `json:"tickets"`
	Revenue      float64 `json:"revenue"`
	RevenueCents int64   `json:"revenueCents"`
}

type BookingStatsResponse struct {
	TotalBookings     int64                 `json:"totalBookings"`
	TotalTickets      int64                 `json:"totalTickets"`
	TotalRevenue      float64               `json:"totalRevenue"`
	TotalRevenueCents int64                 `json:"totalRevenueCents"`
	ByStatus          []StatusStatsResponse `json:"byStatus"`
}

func FromBookingStats(s *queries.BookingStats) *BookingStatsResponse {
	res := &BookingStatsResponse{
		TotalBookings:     s.TotalBookings,
		TotalTickets:      s.TicketQuantity,
		TotalRevenue:      centsToAmount(s.RevenueCents),
		TotalRevenueCents: s.RevenueCents,
		ByStatus:          make([]StatusStatsResponse, 0, len(s.ByStatus)),
	}
	for _, b := range s.ByStatus {
		res.ByStatus = append(res.ByStatus, StatusStatsResponse{
			Status:       b.Status,
			Bookings:     b.Count,
			Tickets:      b.TicketQuantity,
			Revenue:      centsToAmount(b.RevenueCents),
			RevenueCents: b.RevenueCents,
		})
	}
	return res
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100.0
}
