package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/apierror"
	"github.com/orbitlabs/orbit-backend/internal/logger"
	"github.com/orbitlabs/orbit-backend/internal/repository"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

// respondError maps service and repository errors onto RFC 9457 problem
// responses. Unexpected errors are logged server-side and hidden from the
// client.
func respondError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, repository.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
	case errors.Is(err, service.ErrValidation):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
	default:
		log := logger.Ctx(c.Request.Context())
		log.Error("request failed", logger.Err(err), logger.String("resource", resource))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// respondBindError reports a JSON binding failure.
func respondBindError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)
	apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Request body could not be parsed"))
}

// intQuery parses an integer query parameter, falling back to def when
// absent or malformed.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
