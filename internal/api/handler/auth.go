package handler

import (
	"errors"
	"net/http"
	"strings"

	"nagarrakshak/backend/internal/auth"
	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/otp"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// SendOTP issues a one-time code for the phone number. The code is returned
// in the response; SMS delivery is out of scope for the demo deployment.
func (h *Handler) SendOTP(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	record, err := h.OTP.Issue(req.PhoneNumber)
	if errors.Is(err, otp.ErrEmptyPhone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phone_number": record.PhoneNumber,
		"otp_code":     record.OtpCode,
		"expires_at":   record.ExpiresAt,
	})
}

// VerifyOTP checks the code and logs the citizen in, provisioning an
// account on first verification.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		OtpCode     string `json:"otp_code"`
		FullName    string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	phone, err := h.OTP.Verify(req.PhoneNumber, req.OtpCode)
	if errors.Is(err, otp.ErrInvalidOTP) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	profile, err := h.Auth.LoginOrProvisionByPhone(phone, req.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	token, err := h.Auth.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

// CitizenLogin authenticates with the generated username and password.
func (h *Handler) CitizenLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.Auth.LoginCitizen(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := h.Auth.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

// CitizenSignup creates an account with a chosen password after the phone
// number has passed OTP verification in the same session.
func (h *Handler) CitizenSignup(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		OtpCode     string `json:"otp_code"`
		FullName    string `json:"full_name"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	phone, err := h.OTP.Verify(req.PhoneNumber, req.OtpCode)
	if errors.Is(err, otp.ErrInvalidOTP) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	profile, err := h.Auth.CreateCitizenAccount(phone, req.FullName, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := h.Auth.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

// AdminLogin authenticates against the admins table.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	admin, err := h.Auth.LoginAdmin(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := h.Auth.GenerateToken(admin.ID, models.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid session token.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}
		claims, err := h.Auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}
		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Complaint submission works either way.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := h.Auth.ParseToken(tokenString); err == nil {
				c.Set(ctxUserID, claims.Subject)
				c.Set(ctxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin guards the admin console API. Runs after RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ctxRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
