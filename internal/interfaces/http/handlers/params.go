package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, param, label string) (uint, error) {
	idStr := c.Param(param)
	if idStr == "" {
		return 0, errors.NewValidationError(label + " ID is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("Invalid " + strings.ToLower(label) + " ID format")
	}
	if id == 0 {
		return 0, errors.NewValidationError(label + " ID cannot be zero")
	}
	return uint(id), nil
}

// queryUint returns nil when key is absent.
func queryUint(c *gin.Context, key string) (*uint, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return nil, errors.NewValidationError("Invalid " + key + " parameter")
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errors.NewValidationError("Invalid " + key + " parameter")
	}
	return &v, nil
}

// parseDate converts an already validated YYYY-MM-DD field.
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := biztime.ParseDate(*s)
	if err != nil {
		return nil, errors.NewValidationError("Invalid date", err.Error())
	}
	return &d, nil
}

// listParams collects pagination and sorting shared by every list endpoint.
type listParams struct {
	utils.Pagination
	SortBy    string
	SortOrder string
}

func parseListParams(c *gin.Context) listParams {
	return listParams{
		Pagination: utils.ParsePagination(c),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
}
