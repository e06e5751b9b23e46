package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/auth"
)

// --- Huma Input/Output types ---

type LoginBody struct {
	Username string `json:"username" doc:"Admin username" required:"true" minLength:"1"`
	Password string `json:"password" doc:"Admin password" required:"true" minLength:"1"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponse struct {
	Token     string    `json:"token" doc:"Bearer token for admin requests"`
	Username  string    `json:"username" doc:"Authenticated username"`
	ExpiresAt time.Time `json:"expiresAt" doc:"Session expiry"`
}

type LoginOutput struct {
	Body LoginResponse
}

type LogoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token of the session to end" required:"true"`
}

// --- Handler ---

type AuthHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(authSvc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

func registerAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in as the studio admin",
		Tags:        []string{"auth"},
	}, h.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/v1/auth/logout",
		Summary:       "End the current admin session",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusNoContent,
	}, h.Logout)
}

func (h *AuthHandler) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	session, err := h.auth.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("invalid username or password")
		}
		h.logger.Error("login failed", "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	return &LoginOutput{Body: LoginResponse{
		Token:     session.Token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}}, nil
}

func (h *AuthHandler) Logout(ctx context.Context, input *LogoutInput) (*struct{}, error) {
	token := auth.TokenFromHeader(input.Authorization)
	if err := h.auth.Logout(ctx, token); err != nil {
		h.logger.Error("logout failed", "error", err)
		return nil, huma.Error500InternalServerError("logout failed")
	}
	return nil, nil
}
