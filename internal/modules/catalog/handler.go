package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonagenda/internal/modules/booking"
	"salonagenda/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListServices)
	rg.GET("/services/:id", h.GetService)
}

// ListServices handles GET /services. Only active services are listed.
func (h *Handler) ListServices(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load services")
		return
	}

	out := make([]ServiceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toServiceResponse(s))
	}
	response.Success(c, http.StatusOK, gin.H{"services": out})
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": toServiceResponse(*s)})
}
