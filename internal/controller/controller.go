// Package controller holds the HTTP helpers shared by the API controllers.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/lshigami/hirewise/internal/repository"
	"github.com/rs/zerolog/log"
)

// RespondError maps err onto a status code and writes the {"error": ...}
// body. Validation errors carry their message to the client; anything else
// is logged and reported with fallback.
func RespondError(ctx *gin.Context, err error, fallback string) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(fallback)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// BadRequest writes a 400 with msg.
func BadRequest(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
