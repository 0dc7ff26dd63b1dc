package services

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"testing"
	"time"

	"tax-badge-api/models"
)

func approvedFixture(badgeID string) *models.TaxSubmission {
	generated := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	expires := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	return &models.TaxSubmission{
		SubmissionID:     1,
		UserID:           1,
		FinancialYear:    "2024-25",
		TaxPaid:          150_000,
		BadgeName:        "Silver Contributor",
		Status:           models.StatusApproved,
		BadgeID:          &badgeID,
		BadgeGeneratedAt: &generated,
		BadgeExpiresAt:   &expires,
	}
}

func TestEnsureArtifactsIdempotent(t *testing.T) {
	store, err := NewBadgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	var pngRenders, pdfRenders int
	origPNG, origPDF := renderPNG, renderPDF
	renderPNG = func(info badgeInfo) ([]byte, error) { pngRenders++; return []byte("png"), nil }
	renderPDF = func(info badgeInfo) ([]byte, error) { pdfRenders++; return []byte("pdf"), nil }
	defer func() { renderPNG, renderPDF = origPNG, origPDF }()

	sub := approvedFixture("NB-TEST000001")

	pngPath, pdfPath, err := EnsureArtifacts(store, sub, "owner@example.com")
	if err != nil {
		t.Fatalf("first EnsureArtifacts: %v", err)
	}
	if _, _, err := EnsureArtifacts(store, sub, "owner@example.com"); err != nil {
		t.Fatalf("second EnsureArtifacts: %v", err)
	}

	if pngRenders != 1 || pdfRenders != 1 {
		t.Errorf("renders = %d png / %d pdf, want exactly one each", pngRenders, pdfRenders)
	}
	if !store.Exists(pngPath) || !store.Exists(pdfPath) {
		t.Error("expected both artifacts on disk")
	}
}

func TestEnsureArtifactsFallsBackToTodayForNilDates(t *testing.T) {
	store, err := NewBadgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	sub := approvedFixture("NB-TEST000002")
	sub.BadgeGeneratedAt = nil
	sub.BadgeExpiresAt = nil

	if _, _, err := EnsureArtifacts(store, sub, "owner@example.com"); err != nil {
		t.Fatalf("EnsureArtifacts with nil dates: %v", err)
	}
}

func TestEnsureArtifactsRequiresBadge(t *testing.T) {
	store, err := NewBadgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	sub := approvedFixture("NB-TEST000003")
	sub.BadgeID = nil

	_, _, err = EnsureArtifacts(store, sub, "owner@example.com")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestRenderedArtifactsAreWellFormed(t *testing.T) {
	store, err := NewBadgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	sub := approvedFixture("NB-TEST000004")
	pngPath, pdfPath, err := EnsureArtifacts(store, sub, "owner@example.com")
	if err != nil {
		t.Fatalf("EnsureArtifacts: %v", err)
	}

	pngData, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != badgeWidth || img.Bounds().Dy() != badgeHeight {
		t.Errorf("png bounds = %v, want %dx%d", img.Bounds(), badgeWidth, badgeHeight)
	}

	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfData, []byte("%PDF")) {
		t.Error("pdf does not start with %PDF header")
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewBadgeStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	badgeID := "NB-TEST000005"
	if err := store.Write(store.PNGPath(badgeID), []byte("png")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := store.Delete(badgeID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if store.Exists(store.PNGPath(badgeID)) {
		t.Error("artifact still present after delete")
	}
	// Nothing left to delete; must still succeed.
	if err := store.Delete(badgeID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
