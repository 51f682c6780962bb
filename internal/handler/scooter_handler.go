package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/service"
)

// ScooterHandler handles fleet browsing and registration requests
type ScooterHandler struct {
	scooterService service.ScooterService
}

// NewScooterHandler creates a new scooter handler
func NewScooterHandler(scooterService service.ScooterService) *ScooterHandler {
	return &ScooterHandler{scooterService: scooterService}
}

// List returns all scooters
func (h *ScooterHandler) List(c *gin.Context) {
	scooters, err := h.scooterService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scooters)
}

// Get returns one scooter by id
func (h *ScooterHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "scooter id must be an integer",
		})
		return
	}

	scooter, err := h.scooterService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scooter)
}

// Create registers a new scooter on the map
func (h *ScooterHandler) Create(c *gin.Context) {
	var req dto.CreateScooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	scooter, err := h.scooterService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scooter)
}
