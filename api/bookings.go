package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neighbourgood/booking/internal/domain"
	"github.com/neighbourgood/booking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ResourceID int64  `json:"resource_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Message    string `json:"message"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	ResourceID    int64  `json:"resource_id"`
	ResourceTitle string `json:"resource_title"`
	OwnerID       int64  `json:"owner_id"`
	BorrowerID    int64  `json:"borrower_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type bookingListResponse struct {
	Items []bookingResponse `json:"items"`
	Total int               `json:"total"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be formatted as YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be formatted as YYYY-MM-DD"})
		return
	}

	created, err := h.service.RequestBooking(c.Request.Context(), booking.RequestBookingInput{
		ResourceID: req.ResourceID,
		BorrowerID: actorID(c),
		StartDate:  start,
		EndDate:    end,
		Message:    req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	role := domain.Role(c.Query("role"))
	if role != domain.RoleNone && role != domain.RoleOwner && role != domain.RoleBorrower {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'owner' or 'borrower'"})
		return
	}

	status := domain.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	resourceID, _ := strconv.ParseInt(c.Query("resource_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.ListBookings(c.Request.Context(), booking.ListBookingsInput{
		ActorID:    actorID(c),
		Role:       role,
		Status:     status,
		ResourceID: resourceID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := bookingListResponse{Items: make([]bookingResponse, 0, len(items)), Total: total}
	for i := range items {
		resp.Items = append(resp.Items, toBookingResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), id, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.ChangeStatus(c.Request.Context(), id, actorID(c), domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		ResourceID:    b.ResourceID,
		ResourceTitle: b.ResourceTitle,
		OwnerID:       b.OwnerID,
		BorrowerID:    b.BorrowerID,
		StartDate:     b.StartDate.Format(time.DateOnly),
		EndDate:       b.EndDate.Format(time.DateOnly),
		Message:       b.Message,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}
