package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuanLadeira/task-challenge/internal/middleware"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

// AuthHandler serves the cookie-based login, logout and registration pages.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a ui.AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginForm handles GET /ui/auth/login. The root page already renders the
// login form for anonymous visitors, so this just sends the browser there.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// Login handles POST /ui/auth/login. On success it stores the credential in
// an httponly cookie shaped "Bearer <token>" and redirects home.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusBadRequest, "login", gin.H{"Error": "Invalid credentials"})
		return
	}

	// SetCookie URL-escapes the value, so the wire form is "Bearer+<token>";
	// c.Cookie unescapes on read. Non-gin consumers must unescape themselves.
	c.SetCookie(middleware.AccessTokenCookie, "Bearer "+token, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles POST /ui/auth/logout: clear the cookie and let HTMX send
// the browser back to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.Header("HX-Redirect", loginPath)
	c.Status(http.StatusOK)
}

// RegisterForm handles GET /ui/auth/register.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register", gin.H{})
}
