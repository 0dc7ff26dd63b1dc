package services

import "testing"

func TestAdminList(t *testing.T) {
	admins := NewAdminList([]string{"Admin@Example.com", " second@example.com ", ""})

	if !admins.IsAdmin("admin@example.com") {
		t.Error("expected lowercase lookup to match")
	}
	if !admins.IsAdmin("ADMIN@EXAMPLE.COM") {
		t.Error("expected admin check to be case-insensitive")
	}
	if !admins.IsAdmin("second@example.com") {
		t.Error("expected trimmed entry to match")
	}
	if admins.IsAdmin("user@example.com") {
		t.Error("unexpected admin match for unlisted address")
	}
	if admins.IsAdmin("") {
		t.Error("empty address must never be admin")
	}
}
