package controllers

import (
	"errors"
	"log"
	"net/http"

	"tax-badge-api/services"

	"github.com/gin-gonic/gin"
)

// Collaborators are injected once at startup; handlers stay plain functions.
var (
	issuance   *services.Issuance
	badgeStore *services.BadgeStore
)

func Init(engine *services.Issuance, store *services.BadgeStore) {
	issuance = engine
	badgeStore = store
}

// abortWithServiceError maps the service error taxonomy onto HTTP statuses:
// validation/conflict 400, authorization 403, not-found 404, everything
// else 500.
func abortWithServiceError(c *gin.Context, err error) {
	var (
		notFound   *services.NotFoundError
		conflict   *services.ConflictError
		authz      *services.AuthorizationError
		validation *services.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Error()})
	case errors.As(err, &authz):
		c.JSON(http.StatusForbidden, gin.H{"error": authz.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
