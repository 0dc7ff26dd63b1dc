package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tax-badge-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	badgeIDPrefix      = "NB-"
	badgeIDSuffixLen   = 10
	mintAttempts       = 5
	approvedComment    = "Approved"
	invalidatedComment = "Badge invalidated by admin"
)

// Issuance drives the submission state machine. Transitions are committed as
// single conditional updates so that two concurrent calls on the same
// submission cannot both succeed.
type Issuance struct {
	db    *gorm.DB
	store *BadgeStore

	// overridable in tests
	now        func() time.Time
	newBadgeID func() string
}

func NewIssuance(db *gorm.DB, store *BadgeStore) *Issuance {
	return &Issuance{
		db:         db,
		store:      store,
		now:        time.Now,
		newBadgeID: newBadgeID,
	}
}

// newBadgeID mints a credential of the form NB- plus ten upper-hex
// characters. Uniqueness is enforced by the database constraint; the caller
// retries with fresh randomness on collision.
func newBadgeID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return badgeIDPrefix + strings.ToUpper(hex[:badgeIDSuffixLen])
}

// Approve moves a PENDING submission to APPROVED: mints a badge ID, stamps
// the generation date and the expiry (March 31 of the following year), and
// triggers artifact generation plus a notification mail. Artifact or mail
// failure never rolls back the approval; artifacts heal on next access.
func (s *Issuance) Approve(submissionID int) (*models.TaxSubmission, error) {
	sub, err := s.loadSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.Where("user_id = ?", sub.UserID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Submission user not found"}
		}
		return nil, &InternalError{Message: "failed to load submission user", Err: err}
	}

	now := s.now()
	generatedAt := dateOnly(now)
	expiresAt := time.Date(generatedAt.Year()+1, time.March, 31, 0, 0, 0, 0, time.UTC)

	for attempt := 0; ; attempt++ {
		if attempt == mintAttempts {
			return nil, &InternalError{Message: "exhausted badge ID mint attempts"}
		}

		badgeID := s.newBadgeID()
		res := s.db.Model(&models.TaxSubmission{}).
			Where("submission_id = ? AND status = ?", submissionID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":             models.StatusApproved,
				"badge_id":           badgeID,
				"badge_generated_at": generatedAt,
				"badge_expires_at":   expiresAt,
				"admin_comment":      approvedComment,
				"update_at":          now,
			})
		if res.Error != nil {
			if isDuplicateKeyError(res.Error) {
				continue
			}
			return nil, &InternalError{Message: "failed to approve submission", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return nil, s.transitionConflict(submissionID, "approve", sub.Status)
		}
		break
	}

	sub, err = s.loadSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if _, _, err := EnsureArtifacts(s.store, sub, owner.Email); err != nil {
		log.Printf("Warning: artifact generation for badge %s failed: %v", derefBadgeID(sub), err)
	}
	notifyBadgeIssued(owner.Email, sub)

	return sub, nil
}

// Reject moves a PENDING submission to REJECTED, recording the admin's
// reason.
func (s *Issuance) Reject(submissionID int, comment string) (*models.TaxSubmission, error) {
	sub, err := s.loadSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.Where("user_id = ?", sub.UserID).First(&owner).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &InternalError{Message: "failed to load submission user", Err: err}
	}

	res := s.db.Model(&models.TaxSubmission{}).
		Where("submission_id = ? AND status = ?", submissionID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":        models.StatusRejected,
			"admin_comment": comment,
			"update_at":     s.now(),
		})
	if res.Error != nil {
		return nil, &InternalError{Message: "failed to reject submission", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, s.transitionConflict(submissionID, "reject", sub.Status)
	}

	sub, err = s.loadSubmission(submissionID)
	if err != nil {
		return nil, err
	}
	notifySubmissionRejected(owner.Email, comment, sub)

	return sub, nil
}

// Invalidate revokes an APPROVED badge: the status moves to INVALIDATED, the
// badge ID and its dates are cleared, and the artifacts are deleted from the
// store. The retired badge ID is never minted again.
func (s *Issuance) Invalidate(submissionID int) (*models.TaxSubmission, error) {
	sub, err := s.loadSubmission(submissionID)
	if err != nil {
		return nil, err
	}
	if sub.BadgeID == nil {
		return nil, &ConflictError{Message: "No badge to invalidate"}
	}
	badgeID := *sub.BadgeID

	res := s.db.Model(&models.TaxSubmission{}).
		Where("submission_id = ? AND status = ? AND badge_id IS NOT NULL", submissionID, models.StatusApproved).
		Updates(map[string]interface{}{
			"status":             models.StatusInvalidated,
			"badge_id":           nil,
			"badge_generated_at": nil,
			"badge_expires_at":   nil,
			"admin_comment":      invalidatedComment,
			"update_at":          s.now(),
		})
	if res.Error != nil {
		return nil, &InternalError{Message: "failed to invalidate badge", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, s.transitionConflict(submissionID, "invalidate", sub.Status)
	}

	// Best-effort cleanup; missing files are fine and a leftover file is
	// unreachable anyway since the badge ID no longer resolves.
	if err := s.store.Delete(badgeID); err != nil {
		log.Printf("Warning: failed to delete artifacts for badge %s: %v", badgeID, err)
	}

	return s.loadSubmission(submissionID)
}

func (s *Issuance) loadSubmission(submissionID int) (*models.TaxSubmission, error) {
	var sub models.TaxSubmission
	if err := s.db.Where("submission_id = ?", submissionID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Submission not found"}
		}
		return nil, &InternalError{Message: "failed to load submission", Err: err}
	}
	return &sub, nil
}

// transitionConflict re-reads the row so the error names the status that
// actually blocked the transition, not a stale snapshot.
func (s *Issuance) transitionConflict(submissionID int, verb, fallbackStatus string) error {
	status := fallbackStatus
	var cur models.TaxSubmission
	if err := s.db.Where("submission_id = ?", submissionID).First(&cur).Error; err == nil {
		status = cur.Status
	}
	return &ConflictError{Message: fmt.Sprintf("Cannot %s submission with status %s", verb, status)}
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func derefBadgeID(sub *models.TaxSubmission) string {
	if sub.BadgeID == nil {
		return ""
	}
	return *sub.BadgeID
}
