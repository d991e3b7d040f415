package entity

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	User        User   `json:"user"`
}

// TokenClaims is the verified principal attached to a request or a
// websocket connection once its access token has been validated.
type TokenClaims struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (c *TokenClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

func (c *TokenClaims) IsCustomer() bool {
	return c != nil && c.Role == RoleCustomer
}
