package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/freshmanexams/fe_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const adminRegistrationKeyHeader = "X-Admin-Registration-Key"

const forgotPasswordMessage = "If the email exists, a password reset email has been sent."

// authHandler handles the credential, verification and session endpoints.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	sessions      portssvc.SessionSvcFacade
	verification  portssvc.VerificationSvcFacade
	passwordReset portssvc.PasswordResetSvcFacade
	cookie        middleware.SessionCookie
	adminKey      string
	analytics     *utils.PosthogClientWrapper
}

func newAuthHandler(services *portssvc.ServiceContainer, cookie middleware.SessionCookie, adminKey string, analytics *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		userService:   services.User,
		sessions:      services.Session,
		verification:  services.Verification,
		passwordReset: services.PasswordReset,
		cookie:        cookie,
		adminKey:      adminKey,
		analytics:     analytics,
	}
}

// authLimiters are the per-route rate limits of the auth group.
type authLimiters struct {
	login, register, verify, forgotPassword, resend gin.HandlerFunc
}

// registerAuthRoutes sets up the routes under /api/auth.
func registerAuthRoutes(rg *gin.RouterGroup, h *authHandler, guard gin.HandlerFunc, limits authLimiters) {
	verified := middleware.RequireVerified()
	admin := middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", limits.register, h.register)
		auth.POST("/login", limits.login, h.login)
		auth.POST("/verify", limits.verify, h.verifyEmail)
		auth.POST("/resend-verification", guard, limits.resend, h.resendVerification)
		auth.POST("/forgot-password", limits.forgotPassword, h.forgotPassword)
		auth.POST("/reset-password/:token", h.resetPassword)

		auth.GET("/check-auth", guard, verified, h.checkAuth)
		auth.GET("/me", guard, h.checkAuth)
		auth.POST("/logout", guard, h.logout)
		auth.PUT("/update-profile", guard, verified, h.updateProfile)
		auth.DELETE("/delete", guard, h.deleteAccount)

		auth.GET("/AllUser", guard, admin, h.listUsers)
		auth.GET("/AllAdmin", guard, admin, h.listAdmins)
		auth.POST("/IsVerified", guard, admin, h.setVerified)
		auth.POST("/ResetAdminPassword", guard, admin, h.adminResetPassword)
		auth.POST("/deleteAdmin", guard, admin, h.deleteAdmin)
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates an account. Users get a verification code by email; admin roles require the registration key header when one is configured.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Param X-Admin-Registration-Key header string false "Required for admin roles when configured"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Failure 409 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("Invalid role."), "Registration rejected")
		return
	}
	if role.Policy().Privileged && !h.adminKeyMatches(c.GetHeader(adminRegistrationKeyHeader)) {
		respondError(c, apperrors.ErrForbidden, "Privileged registration without a valid key")
		return
	}

	user, emailSent, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	message := "Registration successful."
	if role.Policy().RequiresVerification {
		if emailSent {
			message = "Registration successful. Verification email sent."
		} else {
			message = "Registration successful, but failed to send verification email."
		}
	}
	middleware.PosthogEvent(c, h.analytics, user.UserID, "user_registered", map[string]any{"role": string(user.Role)})
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success:   true,
		Message:   message,
		User:      dto.ToUserResponse(user),
		EmailSent: emailSent,
	})
}

func (h *authHandler) adminKeyMatches(presented string) bool {
	if h.adminKey == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.adminKey)) == 1
}

// login godoc
// @Summary Log in
// @Description Authenticates by username or email, replaces any previous session and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse "Email not verified"
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, session, err := h.userService.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotVerified) {
			c.JSON(http.StatusForbidden, dto.MessageResponse{Success: false, Message: "Please verify your email before logging in."})
			return
		}
		respondError(c, err, "Login failed")
		return
	}

	h.cookie.Set(c, session.Token)
	middleware.PosthogEvent(c, h.analytics, user.UserID, "user_logged_in", nil)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Logged in successfully", User: dto.ToUserResponse(user)})
}

// verifyEmail godoc
// @Summary Verify email
// @Description Consumes a verification code, marks the account verified and logs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Verification code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse "Invalid or expired code"
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/verify [post]
func (h *authHandler) verifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, session, err := h.verification.Verify(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Email verification failed")
		return
	}

	h.cookie.Set(c, session.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Email verified successfully. You are now logged in.",
		User:    dto.ToUserResponse(user),
	})
}

// resendVerification godoc
// @Summary Resend the verification code
// @Description Redelivers the current code, or a new one when it expired.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ResendVerificationResponse
// @Failure 400 {object} dto.MessageResponse "Already verified"
// @Failure 401 {object} dto.MessageResponse
// @Failure 502 {object} dto.ResendVerificationResponse "Email delivery failed"
// @Security CookieAuth
// @Router /auth/resend-verification [post]
func (h *authHandler) resendVerification(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	sent, err := h.verification.ResendCode(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Resending verification failed")
		return
	}
	if !sent {
		c.JSON(http.StatusBadGateway, dto.ResendVerificationResponse{
			Success:   false,
			Message:   "Failed to send verification email. Please try again later.",
			EmailSent: false,
		})
		return
	}
	c.JSON(http.StatusOK, dto.ResendVerificationResponse{Success: true, Message: "Verification email sent.", EmailSent: true})
}

// forgotPassword godoc
// @Summary Request a password reset
// @Description Always answers with the same body so the response does not reveal whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.passwordReset.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Password reset request failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: forgotPasswordMessage})
}

// resetPassword godoc
// @Summary Reset password
// @Description Consumes a reset token from the emailed link and sets a new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param reset body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Invalid or expired token"
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/reset-password/{token} [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.passwordReset.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidOrExpiredCode) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid or expired reset token"})
			return
		}
		respondError(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password reset successful"})
}

// checkAuth godoc
// @Summary Current user
// @Description Returns the user behind the session. /check-auth additionally requires a verified email.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/check-auth [get]
// @Router /auth/me [get]
// @Router /google/me [get]
func (h *authHandler) checkAuth(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: dto.ToUserResponse(user)})
}

// logout godoc
// @Summary Log out
// @Description Revokes the current session and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token, _ := middleware.GetSessionTokenFromContext(c)

	if err := h.sessions.EndSession(c.Request.Context(), userID, token); err != nil {
		respondError(c, err, "Logout failed")
		return
	}
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out successfully."})
}

// updateProfile godoc
// @Summary Update profile
// @Description Changes the username and/or the password. A new password needs the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Changes"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 409 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/update-profile [put]
func (h *authHandler) updateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Profile update failed")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "Profile updated", User: dto.ToUserResponse(user)})
}

// deleteAccount godoc
// @Summary Delete account
// @Description Deletes the current account after re-checking the password.
// @Tags auth
// @Accept json
// @Produce json
// @Param delete body dto.DeleteAccountRequest true "Password confirmation"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/delete [delete]
func (h *authHandler) deleteAccount(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.userService.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		respondError(c, err, "Account deletion failed")
		return
	}
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Account deleted successfully"})
}

// listUsers godoc
// @Summary List users
// @Description Admin only. Pages with limit/offset and reports total and verified counts.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/AllUser [get]
func (h *authHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	users, err := h.userService.ListUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	total, verified, err := h.userService.CountUsers(ctx)
	if err != nil {
		respondError(c, err, "Failed to count users")
		return
	}
	c.JSON(http.StatusOK, dto.ListUsersResponse{
		Success:            true,
		TotalUsers:         total,
		VerifiedUsersCount: verified,
		Users:              dto.ToUserResponses(users),
	})
}

// listAdmins godoc
// @Summary List admins
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/AllAdmin [get]
func (h *authHandler) listAdmins(c *gin.Context) {
	admins, err := h.userService.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list admins")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(admins))
}

// setVerified godoc
// @Summary Set the verified flag of a user
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.SetVerifiedRequest true "Username and flag"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/IsVerified [post]
func (h *authHandler) setVerified(c *gin.Context) {
	var req dto.SetVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.SetVerified(c.Request.Context(), req.Username, *req.IsVerified)
	if err != nil {
		respondError(c, err, "Failed to set verification status")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "User verification status updated", User: dto.ToUserResponse(user)})
}

// adminResetPassword godoc
// @Summary Reset a user's password
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.AdminResetPasswordRequest true "Username and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/ResetAdminPassword [post]
func (h *authHandler) adminResetPassword(c *gin.Context) {
	var req dto.AdminResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.userService.ResetPasswordByUsername(c.Request.Context(), req.UserName, req.NewPassword); err != nil {
		respondError(c, err, "Operator password reset failed")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password reset successfully"})
}

// deleteAdmin godoc
// @Summary Delete a user by username
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.DeleteAdminRequest true "Username"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security CookieAuth
// @Router /auth/deleteAdmin [post]
func (h *authHandler) deleteAdmin(c *gin.Context) {
	var req dto.DeleteAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.DeleteUserByUsername(c.Request.Context(), req.UserName); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	middleware.GetLoggerFromContext(c).Info("User deleted by operator", slog.String("username", req.UserName))
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "User deleted successfully"})
}
