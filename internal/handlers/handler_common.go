package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailos/accounting_service/internal/apperrors"
	"github.com/retailos/accounting_service/internal/middleware"
)

// respondError maps service errors onto HTTP status codes. Validation problems
// and missing dependencies surface with their message; unexpected errors hide
// behind the fallback so internals never leak.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting records", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden operation", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireUserID pulls the authenticated user id from the context, aborting
// with 401 when the auth middleware did not run.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// requireCompanyID reads the mandatory company_uuid query parameter, aborting
// with 400 when absent.
func requireCompanyID(c *gin.Context) (string, bool) {
	companyID := c.Query("company_uuid")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_uuid query parameter is required"})
		return "", false
	}
	return companyID, true
}

// optionalWingID reads the optional wing_uuid query parameter.
func optionalWingID(c *gin.Context) *string {
	if wingID := c.Query("wing_uuid"); wingID != "" {
		return &wingID
	}
	return nil
}
