package services

import (
	"os"
	"time"

	"tax-badge-api/models"
)

// badgeInfo carries everything the renderers need. All fields come from the
// stored submission, so rendering is deterministic and a concurrent
// first-access race produces equivalent bytes.
type badgeInfo struct {
	BadgeName     string
	BadgeID       string
	FinancialYear string
	OwnerName     string
	GeneratedDate string
	ExpiryDate    string
	VerifyURL     string
}

// Renderers are indirected so tests can count invocations.
var (
	renderPNG = renderBadgePNG
	renderPDF = renderBadgePDF
)

// EnsureArtifacts makes sure the PNG and PDF artifacts exist for an approved
// submission, rendering whichever is missing. Repeated calls with the
// artifacts already present do no rendering work.
func EnsureArtifacts(store *BadgeStore, sub *models.TaxSubmission, ownerEmail string) (pngPath, pdfPath string, err error) {
	if sub.BadgeID == nil {
		return "", "", &NotFoundError{Message: "Badge not found"}
	}
	badgeID := *sub.BadgeID

	badgeName := sub.BadgeName
	if badgeName == "" {
		badgeName = "Nation Builder"
	}

	// Dates should always be set on an approved submission; fall back to
	// today so rendering stays total.
	today := dateOnly(time.Now())
	generatedAt := today
	if sub.BadgeGeneratedAt != nil {
		generatedAt = *sub.BadgeGeneratedAt
	}
	expiresAt := today
	if sub.BadgeExpiresAt != nil {
		expiresAt = *sub.BadgeExpiresAt
	}

	info := badgeInfo{
		BadgeName:     badgeName,
		BadgeID:       badgeID,
		FinancialYear: sub.FinancialYear,
		OwnerName:     ownerEmail,
		GeneratedDate: generatedAt.Format("2006-01-02"),
		ExpiryDate:    expiresAt.Format("2006-01-02"),
		VerifyURL:     verifyURL(badgeID),
	}

	pngPath = store.PNGPath(badgeID)
	if !store.Exists(pngPath) {
		data, err := renderPNG(info)
		if err != nil {
			return "", "", &InternalError{Message: "failed to render badge image", Err: err}
		}
		if err := store.Write(pngPath, data); err != nil {
			return "", "", &InternalError{Message: "failed to store badge image", Err: err}
		}
	}

	pdfPath = store.PDFPath(badgeID)
	if !store.Exists(pdfPath) {
		data, err := renderPDF(info)
		if err != nil {
			return "", "", &InternalError{Message: "failed to render badge certificate", Err: err}
		}
		if err := store.Write(pdfPath, data); err != nil {
			return "", "", &InternalError{Message: "failed to store badge certificate", Err: err}
		}
	}

	return pngPath, pdfPath, nil
}

// verifyURL is the public verification link embedded in the artifacts,
// typically scanned from the QR code on the badge.
func verifyURL(badgeID string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/verify/" + badgeID
}
