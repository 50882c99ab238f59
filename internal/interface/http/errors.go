// Package handlers adapts the application services to Gin.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/interface/middleware"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
	"github.com/oksasatya/go-todo-cards/pkg/response"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var (
		notFound *application.NotFoundError
		conflict *application.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		response.Error[any](c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		response.Error[any](c, http.StatusConflict, conflict.Error(), map[string]string{conflict.Field: "already in use"})
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, entity.ErrInvalidSort), errors.Is(err, entity.ErrInvalidCategory):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// idParam parses a positive int64 path parameter, writing 400 on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// principal returns the authenticated caller, writing 401 when Auth did not run.
func principal(c *gin.Context) (application.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
	}
	return p, ok
}
