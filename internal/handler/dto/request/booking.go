package request

import (
	"strings"
	"time"

	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/pkg/patch"
	"event-bookings/internal/usecase/commands"
	"event-bookings/internal/usecase/queries"
)

const dateOnlyLayout = "2006-01-02"

// CreateBookingRequest carries the caller-supplied booking fields. userId and
// customerName always come from the access token.
type CreateBookingRequest struct {
	InvoiceID          string    `json:"invoiceId" binding:"required,max=100"`
	EventID            string    `json:"eventId" binding:"required,max=100"`
	EventName          string    `json:"eventName" binding:"max=200"`
	CategoryID         string    `json:"categoryId" binding:"max=100"`
	CategoryName       string    `json:"categoryName" binding:"max=200"`
	TicketCategoryID   string    `json:"ticketCategoryId" binding:"max=100"`
	TicketCategoryName string    `json:"ticketCategoryName" binding:"max=200"`
	BookingDate        time.Time `json:"bookingDate" binding:"required"`
	Price              *float64  `json:"price" binding:"required,gte=0,lte=10000000"`
	Quantity           int       `json:"quantity" binding:"required,min=1,max=10000"`
	EVoucher           *string   `json:"eVoucher,omitempty" binding:"omitempty,max=100"`
}

func (r CreateBookingRequest) ToInput(userID, customerName string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		InvoiceID:          strings.TrimSpace(r.InvoiceID),
		UserID:             userID,
		CustomerName:       customerName,
		EventID:            strings.TrimSpace(r.EventID),
		EventName:          r.EventName,
		CategoryID:         r.CategoryID,
		CategoryName:       r.CategoryName,
		TicketCategoryID:   r.TicketCategoryID,
		TicketCategoryName: r.TicketCategoryName,
		BookingDate:        r.BookingDate,
		Price:              patch.Coalesce(r.Price, 0),
		Quantity:           r.Quantity,
		EVoucher:           r.EVoucher,
	}
}

// UpdateBookingRequest only touches status, quantity and eVoucher. An empty
// eVoucher clears the stored code.
type UpdateBookingRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=Pending Confirmed Cancelled"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=1,max=10000"`
	EVoucher *string `json:"eVoucher" binding:"omitempty,max=100"`
}

func (r UpdateBookingRequest) ToInput(id string) commands.UpdateBookingInput {
	return commands.UpdateBookingInput{
		ID:       id,
		Status:   r.Status,
		Quantity: r.Quantity,
		EVoucher: r.EVoucher,
	}
}

// ListBookingsQuery is bound from the query string. statuses may repeat or be
// comma separated; dates accept RFC3339 or YYYY-MM-DD.
type ListBookingsQuery struct {
	Statuses []string `form:"statuses"`
	FromDate string   `form:"fromDate"`
	ToDate   string   `form:"toDate"`
	Search   string   `form:"search"`
	SortBy   string   `form:"sortBy"`
	SortDesc bool     `form:"sortDesc"`
	Page     int      `form:"page" binding:"min=0"`
	PageSize int      `form:"pageSize" binding:"min=0"`
}

func (q ListBookingsQuery) ToFilter() (queries.Filter, error) {
	from, err := parseDateParam("fromDate", q.FromDate)
	if err != nil {
		return queries.Filter{}, err
	}
	to, err := parseDateParam("toDate", q.ToDate)
	if err != nil {
		return queries.Filter{}, err
	}

	return queries.Filter{
		Statuses: splitStatuses(q.Statuses),
		FromDate: from,
		ToDate:   to,
		Search:   q.Search,
		SortBy:   strings.TrimSpace(q.SortBy),
		SortDesc: q.SortDesc,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func splitStatuses(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// A date-only value means midnight UTC of that day.
func parseDateParam(name, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnlyLayout, v)
	if err != nil {
		return nil, errs.Mark(errs.Newf("%s must be RFC3339 or YYYY-MM-DD, got %q", name, v), errs.ErrInvalidFilter)
	}
	return &t, nil
}
