package services

import (
	"os"
	"strings"
)

// AdminList is the flat admin allow-list. It is built once at startup and
// injected into the auth middleware; there is no role storage in the
// database.
type AdminList struct {
	emails map[string]struct{}
}

func NewAdminList(emails []string) *AdminList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		set[email] = struct{}{}
	}
	return &AdminList{emails: set}
}

// AdminListFromEnv reads the comma-separated ADMIN_EMAILS variable.
func AdminListFromEnv() *AdminList {
	return NewAdminList(strings.Split(os.Getenv("ADMIN_EMAILS"), ","))
}

func (a *AdminList) IsAdmin(email string) bool {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
