package domain

import "time"

// User is the authenticated account as returned by /api/auth/user/.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsShopOwner bool   `json:"is_shop_owner"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// LoginResponse is the token pair issued by /api/auth/login/.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RegisterRequest is the body of /api/auth/register/.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Credential sources.
const (
	SourceEnv  = "env"
	SourceFile = "file"
)

// Credentials is the locally persisted login state.
type Credentials struct {
	Token     string     `json:"token"`
	Refresh   string     `json:"refresh,omitempty"`
	Username  string     `json:"username,omitempty"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShopSession remembers which shop the owner dashboard is working on.
type ShopSession struct {
	ShopID   int64     `json:"shop_id"`
	ShopName string    `json:"shop_name"`
	OpenedAt time.Time `json:"opened_at"`
}
