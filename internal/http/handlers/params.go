package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/moodlog-backend/internal/platform/apierr"
	"github.com/yungbote/moodlog-backend/internal/services"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_"+name, fmt.Errorf("invalid %s: %q", name, raw))
	}
	return id, nil
}

func dateQuery(c *gin.Context, name string) (time.Time, error) {
	return services.ParseDate("http."+name, c.Query(name))
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.BadRequest("invalid_request", err)
	}
	return nil
}

var errMissingIsCompleted = errors.New("is_completed is required")
