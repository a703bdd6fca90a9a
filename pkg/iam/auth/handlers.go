package auth

import (
	"time"

	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/gofiber/fiber/v2"
)

// AuthHandlers maneja las rutas de autenticación con Fiber
type AuthHandlers struct {
	userService  *usersrv.UserService
	tokenService TokenService
	secureCookie bool
}

// NewAuthHandlers crea un nuevo handler de autenticación
func NewAuthHandlers(userService *usersrv.UserService, tokenService TokenService, secureCookie bool) *AuthHandlers {
	return &AuthHandlers{
		userService:  userService,
		tokenService: tokenService,
		secureCookie: secureCookie,
	}
}

// LoginRequest credenciales del personal
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse respuesta con el token de acceso
type TokenResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresIn   int                 `json:"expires_in"`
	User        user.UserDetailsDTO `json:"user"`
}

// RegisterRoutes registers the public login route and the authenticated /me.
func (ah *AuthHandlers) RegisterRoutes(router fiber.Router, authMiddleware *AuthMiddleware) {
	auth := router.Group("/auth")

	auth.Post("/login", ah.Login)
	auth.Post("/logout", ah.Logout)
	auth.Get("/me", authMiddleware.Authenticate(), ah.GetCurrentUser)
}

// Login valida credenciales y emite un JWT
func (ah *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}

	u, err := ah.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, expiresAt, err := ah.tokenService.GenerateAccessToken(TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Scopes: u.Scopes,
	})
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   ah.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return httpx.OK(c, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
		User:        u.ToDTO(),
	})
}

// Logout borra la cookie de acceso
func (ah *AuthHandlers) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return httpx.Message(c, "Logged out successfully")
}

// GetCurrentUser obtiene la información del usuario autenticado
func (ah *AuthHandlers) GetCurrentUser(c *fiber.Ctx) error {
	authContext, ok := GetAuthContext(c)
	if !ok {
		return ErrUnauthorized()
	}

	userEntity, err := ah.userService.GetUserByID(c.Context(), *authContext.UserID)
	if err != nil {
		return err
	}
	return httpx.OK(c, userEntity.ToDTO())
}
