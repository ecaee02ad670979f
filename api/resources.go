package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neighbourgood/booking/internal/service/booking"
	"github.com/neighbourgood/booking/internal/service/catalog"
)

// ResourceHandler exposes the read-only catalog view plus the per-resource
// booking calendar. Catalog CRUD lives in another service.
type ResourceHandler struct {
	catalog  catalog.CatalogUseCase
	bookings booking.BookingUseCase
}

func NewResourceHandler(catalogSvc catalog.CatalogUseCase, bookingSvc booking.BookingUseCase) *ResourceHandler {
	return &ResourceHandler{catalog: catalogSvc, bookings: bookingSvc}
}

func (h *ResourceHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/calendar", h.calendar)
}

func (h *ResourceHandler) list(c *gin.Context) {
	resources, err := h.catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return
	}
	resource, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) calendar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2020 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be between 2020 and 2100"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	items, err := h.bookings.ResourceCalendar(c.Request.Context(), id, year, time.Month(month))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toBookingResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}
