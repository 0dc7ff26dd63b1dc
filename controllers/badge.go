package controllers

import (
	"errors"

	"tax-badge-api/config"
	"tax-badge-api/models"
	"tax-badge-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// lookupApprovedBadge resolves a badge ID to its approved submission. A
// badge ID that is pending, rejected, or invalidated resolves to nothing:
// the caller cannot distinguish those from an ID that never existed.
func lookupApprovedBadge(badgeID string) (*models.TaxSubmission, *models.User, error) {
	var sub models.TaxSubmission
	err := config.DB.Where("badge_id = ? AND status = ?", badgeID, models.StatusApproved).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &services.NotFoundError{Message: "Badge not found"}
		}
		return nil, nil, &services.InternalError{Message: "failed to look up badge", Err: err}
	}

	var owner models.User
	if err := config.DB.Where("user_id = ?", sub.UserID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &services.NotFoundError{Message: "Submission user not found"}
		}
		return nil, nil, &services.InternalError{Message: "failed to load badge owner", Err: err}
	}

	return &sub, &owner, nil
}

func authorizeBadgeAccess(c *gin.Context, sub *models.TaxSubmission) error {
	if sub.UserID != c.GetInt("userID") && !c.GetBool("isAdmin") {
		return &services.AuthorizationError{Message: "Not authorized to access this badge"}
	}
	return nil
}

func serveBadgeArtifact(c *gin.Context, kind string) {
	badgeID := c.Param("badge_id")

	sub, owner, err := lookupApprovedBadge(badgeID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if err := authorizeBadgeAccess(c, sub); err != nil {
		abortWithServiceError(c, err)
		return
	}

	pngPath, pdfPath, err := services.EnsureArtifacts(badgeStore, sub, owner.Email)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	switch kind {
	case "png":
		c.FileAttachment(pngPath, badgeID+".png")
	case "pdf":
		c.FileAttachment(pdfPath, badgeID+".pdf")
	}
}

// DownloadBadgePNG streams the badge image to its owner or an admin.
func DownloadBadgePNG(c *gin.Context) {
	serveBadgeArtifact(c, "png")
}

// DownloadBadgePDF streams the badge certificate to its owner or an admin.
func DownloadBadgePDF(c *gin.Context) {
	serveBadgeArtifact(c, "pdf")
}
