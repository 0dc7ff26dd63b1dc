package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.org"}
	invalid := []string{"", "no-at-sign", "user@", "@example.com", "user@host"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Admin@Example.COM "); got != "admin@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Error("short password accepted")
	}
	if ok, msg := ValidatePassword("long-enough-password"); !ok {
		t.Errorf("valid password rejected: %s", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  2024-25\x00 "); got != "2024-25" {
		t.Errorf("SanitizeInput = %q", got)
	}
}
