package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/infrastructure/auth"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
)

type AuthHandler struct {
	JWTUtil *auth.JWTUtil
	KVStore driver.KeyValueDB
}

func NewAuthHandler(JWTUtil *auth.JWTUtil, KVStore driver.KeyValueDB) *AuthHandler {
	return &AuthHandler{JWTUtil, KVStore}
}

// HandleSignOut revoke the token until it expires
func (ah *AuthHandler) HandleSignOut(c echo.Context) (err error) {
	ju := ah.JWTUtil
	kv := ah.KVStore

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	token, err := ju.Validate(tokenStr)
	if err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}
	ju.ClearClientToken(c)
	if err := kv.SetEX(c.Request().Context(), tokenStr, token.UserID(), token.TimeRemaining()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
