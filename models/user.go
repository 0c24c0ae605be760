package models

import "time"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what the backend returns from POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type Me struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Account is a customer (club organizer) account managed from the backoffice.
type Account struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	ClubName  *string    `json:"club_name,omitempty"`
	Active    bool       `json:"active"`
	PaidUntil *string    `json:"paid_until,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type AccountInput struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	ClubName *string `json:"club_name,omitempty"`
	Password string  `json:"password,omitempty"`
}

type AccountUpdate struct {
	Name     *string `json:"name,omitempty"`
	ClubName *string `json:"club_name,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
