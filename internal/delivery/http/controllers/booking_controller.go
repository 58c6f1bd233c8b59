package controllers

import (
	"log/slog"
	"net/http"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{slug}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

// BookingSuccessResponse is the success envelope for POST /events/{slug}/bookings (201).
type BookingSuccessResponse struct {
	Data  *domain.Booking `json:"data"`
	Error *h.APIError     `json:"error"`
}

// BookingList is the body of GET /events/{slug}/bookings.
type BookingList struct {
	Bookings []*domain.Booking `json:"bookings"`
	Count    int               `json:"count"`
}

// BookingListSuccessResponse is the success envelope for GET /events/{slug}/bookings.
type BookingListSuccessResponse struct {
	Data  BookingList `json:"data"`
	Error *h.APIError `json:"error"`
}

// BookingCount is the body of GET /events/{slug}/bookings/count.
type BookingCount struct {
	Count int `json:"count"`
}

// BookingCountSuccessResponse is the success envelope for GET /events/{slug}/bookings/count.
type BookingCountSuccessResponse struct {
	Data  BookingCount `json:"data"`
	Error *h.APIError  `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Books the given email onto the event and sends a confirmation email.
// @Tags bookings
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body CreateBookingRequest true "Booker email"
// @Success 201 {object} controllers.BookingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), r.PathValue("slug"), req.Email)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListBookings(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingList{Bookings: bookings, Count: len(bookings)})
}

// CountBookings godoc
// @Summary Count bookings for an event
// @Description Public booking count shown on the event page.
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.BookingCountSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.CountBookings(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingCount{Count: n})
}
