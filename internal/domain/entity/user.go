package entity

import "time"

// Roles válidos para User (forma canónica persistida).
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// Géneros aceptados en el registro.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Address dirección postal opcional del usuario.
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Zip     string `json:"zip,omitempty" bson:"zip,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// User representa un usuario del sistema. Es el actor de CreatedBy y la base del control por rol.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // siempre en minúsculas
	Phone        string
	DOB          time.Time
	Gender       string
	ProfilePic   string
	PasswordHash string // bcrypt hash
	Role         string // Admin, Customer
	Address      *Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeRole devuelve la forma canónica del rol comparando sin distinguir mayúsculas.
// Devuelve "" si el rol no es conocido.
func NormalizeRole(role string) string {
	switch FoldName(role) {
	case FoldName(RoleAdmin):
		return RoleAdmin
	case FoldName(RoleCustomer):
		return RoleCustomer
	default:
		return ""
	}
}

// IsValidGender informa si g es uno de los géneros aceptados.
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}
