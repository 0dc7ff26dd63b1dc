package controllers

import (
	"net/http"
	"regexp"
	"strconv"
	"testing"

	"tax-badge-api/models"
)

var adminHeaders = map[string]string{"X-Test-User": "999", "X-Test-Admin": "true"}

func TestApproveEndpoint(t *testing.T) {
	router, db, _ := setupRouter(t)
	user := createUser(t, db, "owner@example.com")
	sub := createSubmission(t, db, user.UserID, models.StatusPending)

	w := doRequest(router, http.MethodPost, "/admin/approve/"+strconv.Itoa(sub.SubmissionID), "", adminHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	badgeID, _ := body["badge_id"].(string)
	if !regexp.MustCompile(`^NB-[A-Z0-9]{10}$`).MatchString(badgeID) {
		t.Errorf("badge_id = %q, want NB-[A-Z0-9]{10}", badgeID)
	}

	var cur models.TaxSubmission
	if err := db.Where("submission_id = ?", sub.SubmissionID).First(&cur).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cur.Status != models.StatusApproved {
		t.Errorf("status = %s, want APPROVED", cur.Status)
	}
}

func TestApproveEndpointConflict(t *testing.T) {
	router, db, engine := setupRouter(t)
	user := createUser(t, db, "owner@example.com")
	sub := createSubmission(t, db, user.UserID, models.StatusPending)
	if _, err := engine.Approve(sub.SubmissionID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	w := doRequest(router, http.MethodPost, "/admin/approve/"+strconv.Itoa(sub.SubmissionID), "", adminHeaders)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	errMsg, _ := body["error"].(string)
	if !regexp.MustCompile(`APPROVED`).MatchString(errMsg) {
		t.Errorf("error = %q, should name the APPROVED status", errMsg)
	}
}

func TestRejectEndpoint(t *testing.T) {
	router, db, _ := setupRouter(t)
	user := createUser(t, db, "owner@example.com")
	sub := createSubmission(t, db, user.UserID, models.StatusPending)

	w := doRequest(router, http.MethodPost, "/admin/reject/"+strconv.Itoa(sub.SubmissionID),
		`{"comment":"Income proof missing"}`, adminHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var cur models.TaxSubmission
	if err := db.Where("submission_id = ?", sub.SubmissionID).First(&cur).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cur.Status != models.StatusRejected {
		t.Errorf("status = %s, want REJECTED", cur.Status)
	}
	if cur.AdminComment == nil || *cur.AdminComment != "Income proof missing" {
		t.Errorf("admin comment = %v", cur.AdminComment)
	}
}

func TestInvalidateEndpoint(t *testing.T) {
	router, db, engine := setupRouter(t)
	user := createUser(t, db, "owner@example.com")
	sub := createSubmission(t, db, user.UserID, models.StatusPending)
	approved, err := engine.Approve(sub.SubmissionID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	badgeID := *approved.BadgeID

	w := doRequest(router, http.MethodDelete, "/admin/invalidate/"+strconv.Itoa(sub.SubmissionID), "", adminHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/verify/"+badgeID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("verify after invalidate: status = %d, want 404", w.Code)
	}
}

func TestAdminGateBlocksNonAdmin(t *testing.T) {
	router, db, _ := setupRouter(t)
	user := createUser(t, db, "owner@example.com")
	sub := createSubmission(t, db, user.UserID, models.StatusPending)

	w := doRequest(router, http.MethodPost, "/admin/approve/"+strconv.Itoa(sub.SubmissionID), "",
		map[string]string{"X-Test-User": strconv.Itoa(user.UserID)})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var cur models.TaxSubmission
	if err := db.Where("submission_id = ?", sub.SubmissionID).First(&cur).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cur.Status != models.StatusPending {
		t.Errorf("blocked approval mutated status to %s", cur.Status)
	}
}
