package domain

// CredentialStore persists the login token between runs. An empty
// passphrase stores the token in plain JSON with owner-only permissions.
type CredentialStore interface {
	SaveCredentials(passphrase string, creds Credentials) error
	LoadCredentials(passphrase string) (Credentials, bool, error)
	DeleteCredentials() error
}

// ShopSessionStore persists the owner dashboard's selected shop.
type ShopSessionStore interface {
	SaveShopSession(session ShopSession) error
	LoadShopSession() (ShopSession, bool, error)
	ClearShopSession() error
}
