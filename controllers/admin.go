package controllers

import (
	"net/http"
	"strconv"
	"time"

	"tax-badge-api/config"
	"tax-badge-api/models"
	"tax-badge-api/services"
	"tax-badge-api/utils"

	"github.com/gin-gonic/gin"
)

type AdminSubmissionRequest struct {
	UserEmail     string `json:"user_email" binding:"required,email"`
	FinancialYear string `json:"financial_year" binding:"required"`
	TaxPaid       *int   `json:"tax_paid" binding:"required"`
}

type RejectRequest struct {
	Comment string `json:"comment"`
}

// adminSubmissionRow flattens the owner email into the listing the admin
// dashboard shows.
type adminSubmissionRow struct {
	models.TaxSubmission
	UserEmail string `json:"user_email"`
}

// ListAllSubmissions returns every submission with its owner's email, newest
// first.
func ListAllSubmissions(c *gin.Context) {
	var rows []adminSubmissionRow
	if err := config.DB.Table("tax_submissions").
		Select("tax_submissions.*, users.email AS user_email").
		Joins("JOIN users ON users.user_id = tax_submissions.user_id").
		Order("tax_submissions.submission_id DESC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": rows})
}

// SubmitForUser creates a PENDING submission on behalf of an existing user.
func SubmitForUser(c *gin.Context) {
	var req AdminSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.TaxPaid < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tax_paid must not be negative"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", utils.NormalizeEmail(req.UserEmail)).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	submission := models.TaxSubmission{
		UserID:        user.UserID,
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

	c.JSON(http.StatusOK, gin.H{
		"message":       "Submission created for user",
		"submission_id": submission.SubmissionID,
		"user_id":       user.UserID,
		"user_email":    user.Email,
	})
}

// ApproveSubmission issues the badge for a pending submission.
func ApproveSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, err := issuance.Approve(id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Badge issued successfully",
		"submission_id": submission.SubmissionID,
		"badge_id":      submission.BadgeID,
		"generated_at":  submission.BadgeGeneratedAt,
		"expires_at":    submission.BadgeExpiresAt,
	})
}

// RejectSubmission declines a pending submission with the admin's reason.
func RejectSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := issuance.Reject(id, utils.SanitizeInput(req.Comment))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Submission rejected",
		"submission_id": submission.SubmissionID,
	})
}

// InvalidateBadge revokes an issued badge and removes its artifacts.
func InvalidateBadge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, err := issuance.Invalidate(id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Badge invalidated and files removed",
		"submission_id": submission.SubmissionID,
	})
}
