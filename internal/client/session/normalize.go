// Package session turns identity-provider sessions into the canonical user
// record and distributes session changes to interested components.
package session

import "github.com/dmitrijs2005/gophsync/internal/client/models"

// Normalize maps a session user to the user-sync payload. It is pure: the
// same input always gives the same output.
//
// A missing provider means credentials login. Only provider-backed sessions
// carry the OAuth linkage, where the provider's subject is the user id.
func Normalize(u models.SessionUser) models.SyncPayload {
	p := models.SyncPayload{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Image:    u.Image,
		Role:     u.Role,
		Provider: models.ProviderCredentials,
	}
	if u.Provider != "" {
		p.Provider = u.Provider
		p.OAuthID = u.ID
		p.OAuthProvider = u.Provider
	}
	return p
}
