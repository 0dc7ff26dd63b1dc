package models

import (
	"time"
)

// Submission lifecycle statuses. A submission starts PENDING and is moved
// exclusively by the issuance service: PENDING -> APPROVED or REJECTED,
// APPROVED -> INVALIDATED. REJECTED and INVALIDATED are terminal.
const (
	StatusPending     = "PENDING"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
	StatusInvalidated = "INVALIDATED"
)

// TaxSubmission represents one tax-year badge claim. Rows are never deleted;
// invalidation is a soft revoke that clears the badge columns.
type TaxSubmission struct {
	SubmissionID  int    `gorm:"primaryKey;column:submission_id" json:"id"`
	UserID        int    `gorm:"column:user_id;not null" json:"user_id"`
	FinancialYear string `gorm:"column:financial_year;not null" json:"financial_year"`
	TaxPaid       int    `gorm:"column:tax_paid;not null" json:"tax_paid"`

	// BadgeName is classified once at creation from TaxPaid and never
	// recomputed, even if the tier table changes later.
	BadgeName string `gorm:"column:badge_name" json:"badge_name"`
	Status    string `gorm:"column:status;default:PENDING" json:"status"`

	// BadgeID is non-null iff Status == APPROVED. The generated/expiry dates
	// are set and cleared together with it.
	BadgeID          *string    `gorm:"column:badge_id;unique" json:"badge_id,omitempty"`
	BadgeGeneratedAt *time.Time `gorm:"column:badge_generated_at" json:"badge_generated_at,omitempty"`
	BadgeExpiresAt   *time.Time `gorm:"column:badge_expires_at" json:"badge_expires_at,omitempty"`
	AdminComment     *string    `gorm:"column:admin_comment" json:"admin_comment,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at,omitempty"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaxSubmission) TableName() string {
	return "tax_submissions"
}
