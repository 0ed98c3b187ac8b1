package auth

import "strings"

// bootstrapAdminEmail is the account that is always treated as an
// Administrator, even when its stored profile says otherwise.
const bootstrapAdminEmail = "admin@tros.one"

// optimisticRole guesses a role from the email alone. It is the fallback
// used whenever the stored profile cannot be read.
func optimisticRole(email string) Role {
	if strings.Contains(strings.ToLower(email), "admin") || email == bootstrapAdminEmail {
		return roleAdministrator
	}
	return roleVendor
}
