package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created on first successful sign-in
// with an external identity token; there is no password column.
// The Role field is a denormalized copy of the authoritative
// assignment held in `user_roles` and is refreshed on every login
// and on every admin role change.
//
// Fields:
//  ID          – primary key identifier of the user.
//  Email       – unique email address, the key used for role lookups.
//  Name        – display name taken from the identity provider.
//  Picture     – avatar URL, may be empty.
//  OAuthSub    – stable subject identifier from the identity provider.
//  Role        – denormalized role (scholar, faculty or admin).
//  CreatedAt   – timestamp of first sign-in.
//  LastLoginAt – timestamp of the most recent sign-in.
type User struct {
	ID          uint64    // users.id
	Email       string    // users.email
	Name        string    // users.name
	Picture     string    // users.picture
	OAuthSub    string    // users.oauth_sub
	Role        string    // users.role
	CreatedAt   time.Time // users.created_at
	LastLoginAt time.Time // users.last_login_at
}

// RoleAssignment is a row in the `user_roles` table. It is the
// authoritative role for an email address and may be created before
// a matching users row exists (an admin pre-assigning faculty, for
// example). Rows are never deleted.
//
// Fields:
//  Email     – unique email key.
//  Role      – assigned role.
//  UpdatedAt – last modification timestamp.
type RoleAssignment struct {
	Email     string    // user_roles.email
	Role      string    // user_roles.role
	UpdatedAt time.Time // user_roles.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. Only the SHA-256 hash of the token value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
