package apihandlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/Lageebro/nalandabatch/pkg/apihelpers/middlewares"
	"github.com/Lageebro/nalandabatch/pkg/auth/pwhash"

	jwthandling "github.com/Lageebro/nalandabatch/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddAdminAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", mw.RequirePayload(), h.login)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login checks the submitted credentials against the configured admin user.
// Any mismatch answers with the same generic rejection so the response does
// not reveal whether the username or the password was wrong.
func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminUser.Username)) == 1
	passwordMatch, err := pwhash.ComparePasswordWithHash(h.adminUser.PasswordHash, req.Password)
	if err != nil {
		slog.Error("password comparison failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if !usernameMatch || !passwordMatch {
		slog.Warn("admin login rejected", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}

	token, err := jwthandling.GenerateNewAdminUserToken(
		h.adminUser.JWTExpiresIn,
		h.adminUser.Username,
		h.adminUser.JWTSignKey,
	)
	if err != nil {
		slog.Error("failed to generate admin token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	slog.Info("admin logged in", slog.String("username", req.Username))

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   time.Now().Add(h.adminUser.JWTExpiresIn).Unix(),
	})
}
