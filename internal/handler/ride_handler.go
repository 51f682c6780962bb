package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/service"
)

// RideHandler handles the rental lifecycle requests
type RideHandler struct {
	rideService service.RideService
}

// NewRideHandler creates a new ride handler
func NewRideHandler(rideService service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// Start unlocks a scooter and opens a ride for the caller
func (h *RideHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.StartRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	ride, err := h.rideService.Start(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ride)
}

// End closes the caller's ride and returns it with the settlement record
func (h *RideHandler) End(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	rideID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "ride id must be an integer",
		})
		return
	}

	var req dto.EndRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	ride, payment, err := h.rideService.End(c.Request.Context(), rideID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EndRideResponse{Ride: ride, Payment: payment})
}

// List returns the caller's ride history
func (h *RideHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	rides, err := h.rideService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rides)
}

// Active returns the caller's active ride, or 404 when there is none
func (h *RideHandler) Active(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	ride, err := h.rideService.ActiveForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}
