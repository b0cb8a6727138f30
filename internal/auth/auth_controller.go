package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/middleware"
	"github.com/rjimenez-dev/runclub/internal/user"
	"github.com/rjimenez-dev/runclub/pkg/responses"
	"github.com/rjimenez-dev/runclub/pkg/token"
	"github.com/rjimenez-dev/runclub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DefaultFullName = "Runner"

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(userID uint) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// @Summary      Register a new user
// @Description  Create a new account with email, password and display name.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201   {object} AuthResponse "Account created, returns tokens and profile"
// @Failure      400   {object} responses.ErrorResponse "Validation error"
// @Failure      409   {object} responses.ErrorResponse "Email already registered"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := ac.repo.GetUserByEmail(email); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.Conflict(c, "A user with this email already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = DefaultFullName
	}

	newUser := &user.User{
		Email:      email,
		Password:   hashedPassword,
		FullName:   fullName,
		LastActive: time.Now(),
	}
	if err := ac.repo.CreateUser(newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.Conflict(c, "A user with this email already exists")
			return
		}
		responses.InternalServerError(c, "Failed to create account")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser.ID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// @Summary      Log in
// @Description  Authenticate with email and password, returns a token pair.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Same message as a bad password; don't leak which emails exist.
		responses.Unauthorized(c, "Invalid credentials")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Database error")
		return
	}

	if !utils.CheckPassword(foundUser.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser.ID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	foundUser.LastActive = time.Now()
	if err := ac.repo.UpdateUser(foundUser); err != nil {
		config.Log.Warn().Err(err).Uint("user_id", foundUser.ID).Msg("failed to update last active")
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Refresh Access Token
// @Description  Rotates the refresh token and issues a new access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh Token Request"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Failure      500 {object} responses.ErrorResponse "Token generation failed"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil || stored.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "Refresh token is no longer valid")
		return
	}

	if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(claims.UserID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// @Summary      Current profile
// @Description  Returns the authenticated caller's profile.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Security     ApiKeyAuth
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to load profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", FilterUserRecord(u))
}
