package auth

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/pkg/jwt"
)

// Formatos aceptados para la fecha de nacimiento (DD-MM-YYYY o YYYY-MM-DD).
var dobLayouts = []string{"02-01-2006", "2006-01-02"}

const dobOutputLayout = "2006-01-02"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser valida la entrada, hashea el password con bcrypt, persiste el usuario y emite un token.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, string, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Phone) == "" ||
		in.DOB == "" || in.Gender == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, "", domain.Invalid("All fields are required.")
	}
	if !ValidPassword(in.Password) {
		return nil, "", domain.Invalid("Password must be at least 8 characters, contain an uppercase letter, and a number.")
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domain.Invalid("Passwords do not match.")
	}
	dob, err := ParseDOB(in.DOB)
	if err != nil {
		return nil, "", domain.Invalid("Invalid DOB format. Use: DD-MM-YYYY or YYYY-MM-DD")
	}
	if !entity.IsValidGender(in.Gender) {
		return nil, "", domain.Invalid("Gender must be one of Male, Female, Other.")
	}
	// El alta pública solo crea clientes; los administradores salen de EnsureAdmin (cmd/seed_admin).
	role := entity.RoleCustomer
	if in.Role != "" {
		switch entity.NormalizeRole(in.Role) {
		case entity.RoleCustomer:
		case entity.RoleAdmin:
			return nil, "", domain.Invalid("Admin accounts cannot be self-registered.")
		default:
			return nil, "", domain.Invalid("Role must be Customer.")
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		DOB:          dob,
		Gender:       in.Gender,
		ProfilePic:   in.ProfilePic,
		PasswordHash: string(hash),
		Role:         role,
		Address:      toAddress(in.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return ToUserResponse(user), token, nil
}

// Login verifica email/password y genera el JWT. Credenciales incorrectas → ErrUnauthorized,
// sin distinguir si el email existe.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.UserResponse, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", domain.Invalid("Email and password are required.")
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, "", err
	}
	return ToUserResponse(user), token, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if uuid.Validate(userID) != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// EnsureAdmin crea un administrador con email/password o promueve a Admin al usuario existente.
// Devuelve true si el usuario se creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, domain.Invalid("Email is required.")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if existing.Role == entity.RoleAdmin {
			return false, nil
		}
		return false, uc.userRepo.UpdateRole(ctx, existing.ID, entity.RoleAdmin)
	}

	if !ValidPassword(password) {
		return false, domain.Invalid("Password must be at least 8 characters, contain an uppercase letter, and a number.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	err = uc.userRepo.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        email,
		DOB:          time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:       entity.GenderOther,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) issue(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// ValidPassword: al menos 8 caracteres, una mayúscula y un dígito.
func ValidPassword(p string) bool {
	if len([]rune(p)) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// ParseDOB interpreta la fecha en DD-MM-YYYY o YYYY-MM-DD (estricto).
func ParseDOB(s string) (time.Time, error) {
	var err error
	for _, layout := range dobLayouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func toAddress(a *dto.AddressDTO) *entity.Address {
	if a == nil {
		return nil
	}
	return &entity.Address{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip, Country: a.Country}
}

// ToUserResponse convierte la entidad a DTO sin el hash del password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		DOB:        u.DOB.Format(dobOutputLayout),
		Gender:     u.Gender,
		ProfilePic: u.ProfilePic,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
	if u.Address != nil {
		out.Address = &dto.AddressDTO{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			Zip:     u.Address.Zip,
			Country: u.Address.Country,
		}
	}
	return out
}
