package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
	"github.com/nusantara-construction/ledger-backend/internal/middleware"
)

// envelope is the uniform response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

func respondMessage(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func respondPage(c *gin.Context, data any, pagination dto.Pagination) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: &pagination})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// respondServiceError maps service errors onto HTTP statuses. Validation,
// unbalanced and illegal-transition failures are client errors; duplicate and
// contention failures are conflicts; internal errors are masked behind a
// generic message.
func respondServiceError(c *gin.Context, err error, internalMsg string) {
	logger := middleware.GetLoggerFromContext(c)
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalanced), errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Request conflicts with current state", slog.String("error", err.Error()))
		respondError(c, http.StatusConflict, err.Error())
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, internalMsg)
	}
}
