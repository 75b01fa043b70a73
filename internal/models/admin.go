package models

import "time"

// Admin sources.
const (
	SourceLocal = "local"
	SourceOIDC  = "oidc"
)

// Admin is an admin-panel account, either the configured local account or a
// Keycloak user mapped from token claims.
type Admin struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Sub         string    `bson:"sub" json:"sub"`
	Username    string    `bson:"username" json:"username"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
	Source      string    `bson:"source" json:"source"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	LastLoginAt time.Time `bson:"lastLoginAt" json:"lastLoginAt"`
}
