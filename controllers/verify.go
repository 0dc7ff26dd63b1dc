package controllers

import (
	"errors"
	"net/http"
	"time"

	"tax-badge-api/config"
	"tax-badge-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerifyBadge answers the public validity query for a badge ID. Only
// currently APPROVED badges resolve; anything else is reported as an invalid
// ID, so the endpoint never reveals pending, rejected, or revoked
// submissions.
func VerifyBadge(c *gin.Context) {
	badgeID := c.Param("badge_id")

	var sub models.TaxSubmission
	err := config.DB.Where("badge_id = ? AND status = ?", badgeID, models.StatusApproved).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid badge ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify badge"})
		return
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	isExpired := sub.BadgeExpiresAt != nil && sub.BadgeExpiresAt.Before(today)

	statusLabel := "VALID"
	if isExpired {
		statusLabel = "EXPIRED"
	}

	var expiresAt *string
	if sub.BadgeExpiresAt != nil {
		formatted := sub.BadgeExpiresAt.Format("2006-01-02")
		expiresAt = &formatted
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":          !isExpired,
		"badge_id":       sub.BadgeID,
		"badge_name":     sub.BadgeName,
		"financial_year": sub.FinancialYear,
		"expires_at":     expiresAt,
		"status":         statusLabel,
	})
}
