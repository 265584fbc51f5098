//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/domain/user"
	"event-bookings/internal/handler/api"
	resdto "event-bookings/internal/handler/dto/response"
	"event-bookings/internal/handler/middleware"
	"event-bookings/internal/pkg/config"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/usecase/commands"
	"event-bookings/internal/usecase/queries"
	"event-bookings/internal/usecase/shared"
	"event-bookings/tests/common/builder"
	"event-bookings/tests/common/httptest"
	"event-bookings/tests/common/testutil"
	commandsmock "event-bookings/tests/mock/commands"
	queriesmock "event-bookings/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	adminToken  = "admin"
	memberToken = "member"
	anonToken   = "nameless"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		switch strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") {
		case adminToken:
			c.Set("user_id", "admin-1")
			c.Set("user_role", user.RoleAdmin)
			c.Set("user_name", "Ada Admin")
		case memberToken:
			c.Set("user_id", "user-1")
			c.Set("user_role", user.RoleMember)
			c.Set("user_name", "Alice Andersson")
		case anonToken:
			c.Set("user_id", "user-9")
			c.Set("user_role", user.RoleMember)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Next()
	}
	roles := middleware.NewAuthMiddleware(nil, config.CookieConfig{})
	member := roles.RequireRoleAtLeast(user.RoleMember)
	admin := roles.RequireRoleAtLeast(user.RoleAdmin)

	g := s.router.Group("/api/bookings", authMiddleware)
	g.GET("/admin-bookings", admin, s.handler.ListAll)
	g.GET("/user-bookings", member, s.handler.ListMine)
	g.GET("/stats", admin, s.handler.Stats)
	g.GET("/:id", s.handler.Get)
	g.POST("", member, s.handler.Create)
	g.PUT("/:id", s.handler.Update)
	g.PATCH("/:id/cancel", member, s.handler.Cancel)
	g.DELETE("/:id", admin, s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildView()

	bound := []testCaseBooking{
		{name: "quantity boundary OK (1)", mutate: testutil.Field("quantity", 1), expectCode: http.StatusCreated},
		{name: "quantity boundary invalid (0)", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
		{name: "quantity boundary OK (10000)", mutate: testutil.Field("quantity", 10000), expectCode: http.StatusCreated},
		{name: "quantity boundary invalid (10001)", mutate: testutil.Field("quantity", 10001), expectCode: http.StatusBadRequest},
		{name: "quantity wider than int32", mutate: testutil.Field("quantity", int64(1)<<32+1), expectCode: http.StatusBadRequest},
		{name: "price boundary OK (0)", mutate: testutil.Field("price", 0), expectCode: http.StatusCreated},
		{name: "price boundary invalid (-0.01)", mutate: testutil.Field("price", -0.01), expectCode: http.StatusBadRequest},
		{name: "price boundary OK (10000000)", mutate: testutil.Field("price", 10_000_000), expectCode: http.StatusCreated},
		{name: "price boundary invalid (10000000.01)", mutate: testutil.Field("price", 10_000_000.01), expectCode: http.StatusBadRequest},
		{name: "price far above the cap (1e14)", mutate: testutil.Field("price", 1e14), expectCode: http.StatusBadRequest},
		{name: "eVoucher length OK (100 chars)", mutate: testutil.Field("eVoucher", strings.Repeat("a", 100)), expectCode: http.StatusCreated},
		{name: "eVoucher length invalid (101 chars)", mutate: testutil.Field("eVoucher", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: invoiceId (required)", mutate: testutil.Field("invoiceId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: eventId (required)", mutate: testutil.Field("eventId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: price (required)", mutate: testutil.Field("price", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: quantity (required)", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: eventName (optional)", mutate: testutil.Field("eventName", nil), expectCode: http.StatusCreated},
	}

	malformed := []testCaseBooking{
		{name: "bookingDate not a timestamp", mutate: testutil.Field("bookingDate", "tomorrow"), expectCode: http.StatusBadRequest},
		{name: "quantity not a number", mutate: testutil.Field("quantity", "two"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing, malformed}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*queries.BookingView, error) {
				s.Equal("user-1", in.UserID)
				s.Equal("Alice Andersson", in.CustomerName)
				s.Equal(299.99, in.Price)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, memberToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.BookingID)
		s.Equal("Pending", body.Status)
		s.Equal(299.99, body.Price)
		s.Equal(599.98, body.TotalAmount)
		s.Equal(int64(59998), body.TotalAmountCents)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + returnView.ID})
	})

	s.Run("success: customer name defaults when the token has none", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*queries.BookingView, error) {
				s.Equal("user-9", in.UserID)
				s.Equal("Member", in.CustomerName)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, anonToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, memberToken)
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "domain validation error",
				commandsError:  errs.Mark(booking.ErrInvalidQuantity, errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "database failure",
				commandsError:  errs.Mark(errors.New("connection reset"), errs.ErrDatabaseOperationFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
			{
				name:           "unexpected error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, memberToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/api/bookings/" + returnView.ID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, memberToken)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.BookingID)
		s.Equal(returnView.InvoiceID, response.InvoiceID)
		s.Equal(returnView.EventName, response.EventName)
		s.Equal(returnView.Quantity, response.Quantity)
		s.True(returnView.BookingDate.Equal(response.BookingDate))
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, errs.Mark(errors.New("timeout"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	views := []*queries.BookingView{
		builder.NewBookingBuilder().BuildView(),
		builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.InvoiceID = "INV-1002" }).BuildView(),
	}

	s.Run("success: admin list passes the parsed filter", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), shared.Actor{IsAdmin: true}).
			DoAndReturn(func(_ any, f queries.Filter, _ shared.Actor) ([]*queries.BookingView, error) {
				s.Equal([]string{"Pending", "Confirmed"}, f.Statuses)
				s.Equal("Price", f.SortBy)
				s.True(f.SortDesc)
				s.Equal(1, f.Page)
				s.Equal(5, f.PageSize)
				s.Require().NotNil(f.FromDate)
				s.Equal("2025-06-01", f.FromDate.Format("2006-01-02"))
				return views, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/bookings/admin-bookings?statuses=Pending,Confirmed&sortBy=Price&sortDesc=true&page=1&pageSize=5&fromDate=2025-06-01",
			nil, adminToken)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("INV-1002", body[1].InvoiceID)
	})

	s.Run("success: member list is scoped to the caller", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), shared.Actor{UserID: "user-1"}).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/user-bookings", nil, memberToken)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: 403 Forbidden for members on the admin list", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/admin-bookings", nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 400 Bad Request on malformed parameters", func() {
		for _, q := range []string{"page=-1", "pageSize=abc", "fromDate=yesterday"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/admin-bookings?"+q, nil, adminToken)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
		}
	})

	s.Run("error: 400 Bad Request on invalid filter from the query layer", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("unknown status"), errs.ErrInvalidFilter)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/admin-bookings?statuses=Refunded", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdate() {
	id := "b-1"
	url := "/api/bookings/" + id

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.UpdateBookingInput) error {
				s.Equal(id, in.ID)
				s.Require().NotNil(in.Status)
				s.Equal("Confirmed", *in.Status)
				s.Nil(in.Quantity)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "Confirmed"}, memberToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	validation := []testCaseBooking{
		{name: "unknown status", mutate: testutil.Field("status", "Archived"), expectCode: http.StatusBadRequest},
		{name: "lowercase status", mutate: testutil.Field("status", "confirmed"), expectCode: http.StatusBadRequest},
		{name: "zero quantity", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
		{name: "quantity above maximum", mutate: testutil.Field("quantity", 10001), expectCode: http.StatusBadRequest},
		{name: "quantity wider than int32", mutate: testutil.Field("quantity", int64(1)<<32+1), expectCode: http.StatusBadRequest},
	}
	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				body := map[string]any{}
				tc.mutate(body)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, memberToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "not found",
				commandsError:  errs.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "illegal transition",
				commandsError:  errs.Mark(booking.ErrInvalidStatusTransition, errs.ErrDomainValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid status transition",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any()).Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "Pending"}, memberToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCancel / TestDelete / TestStats
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelled }).BuildView()
	url := "/api/bookings/" + view.ID + "/cancel"

	s.Run("success: returns the cancelled booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, "user-1").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, memberToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Cancelled", body.Status)
	})

	s.Run("error: 404 when the booking belongs to someone else", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, "user-1").Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestDelete() {
	url := "/api/bookings/b-1"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), "b-1").Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for missing booking", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), "b-1").Return(errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for members", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *BookingHandlerTestSuite) TestStats() {
	s.Run("success: returns totals and breakdown", func() {
		s.mockQueries.EXPECT().Statistics(gomock.Any(), shared.Actor{UserID: "admin-1", IsAdmin: true}).
			Return(&queries.BookingStats{
				TotalBookings:  2,
				TicketQuantity: 3,
				RevenueCents:   17000,
				ByStatus: []queries.StatusBreakdown{
					{Status: "Pending", Count: 1, TicketQuantity: 2, RevenueCents: 12000},
					{Status: "Confirmed", Count: 1, TicketQuantity: 1, RevenueCents: 5000},
				},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats", nil, adminToken)

		var body resdto.BookingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(2), body.TotalBookings)
		s.Equal(int64(3), body.TotalTickets)
		s.Equal(170.0, body.TotalRevenue)
		s.Len(body.ByStatus, 2)
		s.Equal(120.0, body.ByStatus[0].Revenue)
	})

	s.Run("error: 403 Forbidden for members", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/stats", nil, memberToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
