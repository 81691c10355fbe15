package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

func validationFailed(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		validationFailed(c, utils.ValidationDetails(err))
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

func pageQuery(c *gin.Context) models.PageQuery {
	return models.ParsePageQuery(c.Query("page"), c.Query("pageSize"), c.Query("q"))
}

// respondError maps service errors onto status codes. Unknown errors are
// attached to the context for ErrorHandler to log and answered with a
// generic 500.
func respondError(c *gin.Context, err error, resource string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		validationFailed(c, verr.Details)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": resource + " already exists"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
