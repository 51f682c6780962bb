package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/service"
)

// AuthHandler handles account and session requests
type AuthHandler struct {
	authService  service.AuthService
	verification service.VerificationService
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService service.AuthService,
	verification service.VerificationService,
	cookieName string,
	cookieMaxAge int,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		verification: verification,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusCreated, dto.AuthResponse{User: result.User})
}

// Login handles username/password login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{User: result.User})
}

// Logout revokes the caller's session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out successfully"})
}

// Me returns the current user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile merges profile fields into the current user
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword replaces the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed successfully"})
}

// RequestPhoneCode issues an SMS verification code for a phone number
func (h *AuthHandler) RequestPhoneCode(c *gin.Context) {
	var req dto.PhoneCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.verification.RequestPhoneCode(c.Request.Context(), req.PhoneNumber); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Verification code sent"})
}

// VerifyPhone matches an SMS code and signs the rider in
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req dto.PhoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.verification.VerifyPhoneCode(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{User: result.User})
}

// RequestEmailCode issues a verification code for the caller's email
func (h *AuthHandler) RequestEmailCode(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	if err := h.verification.RequestEmailCode(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Verification code sent"})
}

// VerifyEmail matches the caller's pending email code
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.verification.ConfirmEmailCode(c.Request.Context(), userID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Email verified"})
}
