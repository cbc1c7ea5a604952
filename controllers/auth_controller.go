package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/middleware"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/utils"
)

const sessionDuration = 72 * time.Hour

// AuthController handles registration, login and session lifecycle.
type AuthController struct {
	svc *service.Service
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{svc: svc}
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates a regular account and opens a session for it.
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	user, err := a.svc.Register(ctx.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		fail(ctx, err)
		return
	}
	token, err := utils.GenerateSession(user.ID, user.Name, user.IsAdmin, sessionDuration)
	if err != nil {
		fail(ctx, err)
		return
	}
	setSessionCookie(ctx, token)
	utils.Success(ctx, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and opens a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	user, err := a.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}
	token, err := utils.GenerateSession(user.ID, user.Name, user.IsAdmin, sessionDuration)
	if err != nil {
		fail(ctx, err)
		return
	}
	setSessionCookie(ctx, token)
	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout revokes the current session token and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token := middleware.TokenFrom(ctx); token != "" {
		expires := time.Now().Add(sessionDuration)
		if claims, err := utils.ParseSession(token); err == nil && claims.ExpiresAt != nil {
			expires = claims.ExpiresAt.Time
		}
		utils.BlacklistSession(token, expires)
	}
	clearSessionCookie(ctx)
	utils.Success(ctx, nil)
}

// Me returns the account behind the current session.
func (a *AuthController) Me(ctx *gin.Context) {
	p := middleware.PrincipalFrom(ctx)
	if p == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40100, "authentication required")
		return
	}
	user, err := a.svc.UserByID(ctx.Request.Context(), p.UserID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword triggers a reset-token email. The response does not
// reveal whether the account exists.
func (a *AuthController) ForgotPassword(ctx *gin.Context) {
	var req forgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	if err := a.svc.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "if the email exists, reset instructions have been sent"})
}

func setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.SessionCookie, token, int(sessionDuration.Seconds()), "/", "", false, true)
}

func clearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}
