package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/log"
	"farmflow/internal/services"
	"farmflow/internal/store"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// respondError maps err onto a status and JSON body and logs 5xx causes.
func respondError(c *gin.Context, err error) {
	var (
		validation *core.ValidationError
		loadErr    *services.LoadError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Error(), Field: validation.Field})
	case errors.Is(err, core.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: notFoundMessage(err)})
	case errors.As(err, &loadErr):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: loadErr.Message, Retryable: true})
	default:
		ctx := c.Request.Context()
		log.FromContext(ctx).ErrorContext(ctx, "Request failed", log.FieldPath, c.FullPath(), log.FieldError, err.Error())
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func notFoundMessage(err error) string {
	var nf *core.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return "not found"
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// pathID parses the :id route parameter, responding 400 when it is invalid.
func pathID(c *gin.Context) (int64, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

// bind decodes a JSON body, responding 400 when it is malformed.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "invalid request body")
		return false
	}
	return true
}
