package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
)

// parseUUIDParam extracts and validates a uuid path parameter, responding
// with 400 itself on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
