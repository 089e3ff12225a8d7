package dto

import "time"

// AddressDTO dirección opcional del usuario.
type AddressDTO struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// RegisterRequest entrada para registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	FirstName       string      `json:"firstName" validate:"required,max=100"`
	LastName        string      `json:"lastName" validate:"required,max=100"`
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone" validate:"required,max=30"`
	DOB             string      `json:"dob" validate:"required"`
	Gender          string      `json:"gender" validate:"required"`
	Password        string      `json:"password" validate:"required"`
	ConfirmPassword string      `json:"confirmPassword" validate:"required"`
	Role            string      `json:"role" enums:"Customer"` // Admin solo vía cmd/seed_admin
	ProfilePic      string      `json:"profilePic"`
	Address         *AddressDTO `json:"address"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password). DOB en formato YYYY-MM-DD.
type UserResponse struct {
	ID         string      `json:"id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	DOB        string      `json:"dob"`
	Gender     string      `json:"gender"`
	ProfilePic string      `json:"profilePic,omitempty"`
	Role       string      `json:"role"`
	Address    *AddressDTO `json:"address,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AuthResponse salida de registro y login: usuario + token JWT.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// UserEnvelope {success, user}.
type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
