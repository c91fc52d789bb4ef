package utils

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID from a path parameter.
// entityName is used in error messages (e.g. "product").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}
	return sid, nil
}

// BindJSON decodes the JSON body into obj and validates its binding tags.
// Both failures come back as validation AppErrors.
func BindJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return errors.NewValidationError("request body is required")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return ValidateStruct(obj)
}
