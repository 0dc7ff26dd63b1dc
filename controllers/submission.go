package controllers

import (
	"net/http"
	"time"

	"tax-badge-api/config"
	"tax-badge-api/models"
	"tax-badge-api/services"
	"tax-badge-api/utils"

	"github.com/gin-gonic/gin"
)

type SubmissionRequest struct {
	FinancialYear string `json:"financial_year" binding:"required"`
	TaxPaid       *int   `json:"tax_paid" binding:"required"`
}

// SubmitTax creates a PENDING submission for the authenticated user. The
// badge tier is classified once here and kept even if the tier table changes
// later; a "Not Eligible" classification is stored like any other.
func SubmitTax(c *gin.Context) {
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.TaxPaid < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tax_paid must not be negative"})
		return
	}

	userID := c.GetInt("userID")
	now := time.Now()

	submission := models.TaxSubmission{
		UserID:        userID,
		FinancialYear: utils.SanitizeInput(req.FinancialYear),
		TaxPaid:       *req.TaxPaid,
		BadgeName:     services.BadgeForTax(*req.TaxPaid),
		Status:        models.StatusPending,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GetMySubmissions lists the caller's submissions, newest first.
func GetMySubmissions(c *gin.Context) {
	userID := c.GetInt("userID")

	var submissions []models.TaxSubmission
	if err := config.DB.Where("user_id = ?", userID).
		Order("submission_id DESC").
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GetMyBadges lists only the caller's currently approved badges.
func GetMyBadges(c *gin.Context) {
	userID := c.GetInt("userID")

	var badges []models.TaxSubmission
	if err := config.DB.Where("user_id = ? AND status = ?", userID, models.StatusApproved).
		Order("submission_id DESC").
		Find(&badges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}
