package services

import (
	"fmt"
	"log"

	"tax-badge-api/config"
	"tax-badge-api/models"
)

// Mail notifications are best-effort: failures are logged and never affect
// the transition that triggered them. When SMTP is not configured the
// notification is skipped entirely.

func notifyBadgeIssued(email string, sub *models.TaxSubmission) {
	if email == "" || !config.MailEnabled() {
		return
	}

	expires := ""
	if sub.BadgeExpiresAt != nil {
		expires = sub.BadgeExpiresAt.Format("2006-01-02")
	}
	subject := "Your Nation Builder badge has been issued"
	html := fmt.Sprintf(
		"<p>Your tax submission for %s has been approved.</p>"+
			"<p>Badge: <strong>%s</strong><br>Badge ID: <strong>%s</strong><br>Valid until: %s</p>"+
			"<p>Verify it any time at <a href=%q>%s</a>.</p>",
		sub.FinancialYear, sub.BadgeName, derefBadgeID(sub), expires,
		verifyURL(derefBadgeID(sub)), verifyURL(derefBadgeID(sub)),
	)

	if err := config.SendMail([]string{email}, subject, html); err != nil {
		log.Printf("Warning: failed to send issuance mail to %s: %v", email, err)
	}
}

func notifySubmissionRejected(email, comment string, sub *models.TaxSubmission) {
	if email == "" || !config.MailEnabled() {
		return
	}

	subject := "Your tax submission was not approved"
	html := fmt.Sprintf(
		"<p>Your tax submission for %s was rejected.</p><p>Reason: %s</p>",
		sub.FinancialYear, comment,
	)

	if err := config.SendMail([]string{email}, subject, html); err != nil {
		log.Printf("Warning: failed to send rejection mail to %s: %v", email, err)
	}
}
