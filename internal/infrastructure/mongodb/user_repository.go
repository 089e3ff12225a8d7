package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userDoc struct {
	ID           string          `bson:"_id"`
	FirstName    string          `bson:"firstName"`
	LastName     string          `bson:"lastName"`
	Email        string          `bson:"email"`
	Phone        string          `bson:"phone"`
	DOB          time.Time       `bson:"dob"`
	Gender       string          `bson:"gender"`
	ProfilePic   string          `bson:"profilePic"`
	PasswordHash string          `bson:"password"`
	Role         string          `bson:"role"`
	Address      *entity.Address `bson:"address,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt"`
}

// UserRepo implementación del puerto UserRepository sobre MongoDB. El email se guarda en minúsculas.
type UserRepo struct {
	col *mongo.Collection
}

// NewUserRepository construye el adaptador sobre la colección de usuarios de db.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(UsersCollection)}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	doc := userDoc{
		ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: strings.ToLower(u.Email),
		Phone: u.Phone, DOB: u.DOB, Gender: u.Gender, ProfilePic: u.ProfilePic,
		PasswordHash: u.PasswordHash, Role: u.Role, Address: u.Address,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", bson.M{"_id": id})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, op string, filter bson.M) (*entity.User, error) {
	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &entity.User{
		ID: d.ID, FirstName: d.FirstName, LastName: d.LastName, Email: d.Email,
		Phone: d.Phone, DOB: d.DOB, Gender: d.Gender, ProfilePic: d.ProfilePic,
		PasswordHash: d.PasswordHash, Role: d.Role, Address: d.Address,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}, nil
}
