package http_auth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	"github.com/humanbelnik/jukebox/internal/model"
)

const TokenHeader = "X-role-token"

// Validator tells whether a token grants a role.
type Validator interface {
	IsValid(t string, want model.Role) (bool, error)
}

type Middleware struct {
	validator Validator
	logger    *slog.Logger
}

func New(
	validator Validator,
) *Middleware {
	return &Middleware{
		validator: validator,
		logger:    slog.Default(),
	}
}

// AuthRequired rejects requests whose token does not grant role.
func (m *Middleware) AuthRequired(role model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(TokenHeader)
		if t == "" {
			m.logger.Warn(fmt.Sprintf("no %s header", TokenHeader))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", TokenHeader),
			})
			ctx.Abort()
			return
		}

		valid, err := m.validator.IsValid(t, role)
		if err != nil {
			m.logger.Error("internal error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}
		if !valid {
			m.logger.Warn("invalid token", slog.String("role", string(role)))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid token",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// Allow reports whether the request carries a conductor-or-better token.
func (m *Middleware) Allow(ctx *gin.Context) bool {
	t := ctx.GetHeader(TokenHeader)
	if t == "" {
		return false
	}
	valid, err := m.validator.IsValid(t, model.RoleConductor)
	if err != nil {
		m.logger.Error("internal error", slog.String("error", err.Error()))
		return false
	}
	return valid
}
