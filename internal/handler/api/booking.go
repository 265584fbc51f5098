package api

import (
	"errors"
	"net/http"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/domain/user"
	reqdto "event-bookings/internal/handler/dto/request"
	resdto "event-bookings/internal/handler/dto/response"
	"event-bookings/internal/handler/httperr"
	"event-bookings/internal/handler/middleware"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/usecase/commands"
	"event-bookings/internal/usecase/queries"
	"event-bookings/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const defaultCustomerName = "Member"

var errMissingIdentity = errors.New("user id missing from context")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary List all bookings
// @Description List every booking with filtering, sorting and paging (admin only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param statuses query []string false "Statuses (Pending, Confirmed, Cancelled)" collectionFormat(multi)
// @Param fromDate query string false "Earliest booking date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Latest booking date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Param search query string false "Substring of customer name, event name or invoice id"
// @Param sortBy query string false "BookingDate or Price"
// @Param sortDesc query bool false "Sort descending"
// @Param page query int false "Zero-based page index"
// @Param pageSize query int false "Page size (default 20, max 200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/admin-bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	h.list(c, shared.Actor{IsAdmin: true})
}

// @Summary List my bookings
// @Description List the caller's own bookings with filtering, sorting and paging
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param statuses query []string false "Statuses (Pending, Confirmed, Cancelled)" collectionFormat(multi)
// @Param fromDate query string false "Earliest booking date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Param toDate query string false "Latest booking date, inclusive (RFC3339 or YYYY-MM-DD)"
// @Param search query string false "Substring of customer name, event name or invoice id"
// @Param sortBy query string false "BookingDate or Price"
// @Param sortDesc query bool false "Sort descending"
// @Param page query int false "Zero-based page index"
// @Param pageSize query int false "Page size (default 20, max 200)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /bookings/user-bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	h.list(c, shared.Actor{UserID: userID})
}

func (h *BookingHandler) list(c *gin.Context, actor shared.Actor) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", err.Error())
		return
	}

	views, err := h.q.List(c.Request.Context(), filter, actor)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, view)
}

// @Summary Create booking
// @Description Create a booking for the caller. userId and customerName are taken from the token.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Header 201 {string} Location "URL of the created booking"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	name := middleware.GetUserName(c)
	if name == "" {
		name = defaultCustomerName
	}

	view, err := h.cmds.Create(c.Request.Context(), req.ToInput(userID, name))
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+view.ID)
	h.respondWithView(c, http.StatusCreated, view)
}

// @Summary Update booking
// @Description Patch status, quantity or eVoucher of a booking
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Update(c.Request.Context(), req.ToInput(c.Param("id"))); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel one of the caller's own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	view, err := h.cmds.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, view)
}

// @Summary Delete booking
// @Description Permanently delete a booking (admin only)
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.cmds.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Booking statistics
// @Description Totals of bookings, tickets and revenue with a per-status breakdown (admin only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BookingStatsResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings/stats [get]
func (h *BookingHandler) Stats(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)
	userID, _ := middleware.GetUserID(c)

	stats, err := h.q.Statistics(c.Request.Context(), shared.Actor{UserID: userID, IsAdmin: role == user.RoleAdmin})
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingStats(stats))
}

func (h *BookingHandler) respondWithView(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}

func abortWithBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, booking.ErrInvalidStatusTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
	case errs.Is(err, errs.ErrInvalidFilter):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", err.Error())
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
