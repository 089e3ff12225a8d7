package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	NameFold  string    `bson:"nameFold"`
	Parent    *string   `bson:"parent"`
	Status    string    `bson:"status"`
	CreatedBy string    `bson:"createdBy"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toCategoryDoc(c *entity.Category) categoryDoc {
	d := categoryDoc{
		ID:        c.ID,
		Name:      c.Name,
		NameFold:  entity.FoldName(c.Name),
		Status:    c.Status,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != "" {
		p := c.ParentID
		d.Parent = &p
	}
	return d
}

func (d categoryDoc) toEntity() *entity.Category {
	c := &entity.Category{
		ID:        d.ID,
		Name:      d.Name,
		Status:    d.Status,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Parent != nil {
		c.ParentID = *d.Parent
	}
	return c
}

// parentValue "" se guarda como null.
func parentValue(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// CategoryRepo implementación del puerto CategoryRepository sobre MongoDB.
// Todas las operaciones usan el ctx recibido, así participan de la sesión si es un SessionContext.
type CategoryRepo struct {
	col *mongo.Collection
}

// NewCategoryRepository construye el adaptador sobre la colección de categorías de db.
func NewCategoryRepository(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{col: db.Collection(CategoriesCollection)}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if _, err := r.col.InsertOne(ctx, toCategoryDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.findOne(ctx, "get category by id", bson.M{"_id": id})
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, "get category by name", bson.M{"name": name})
}

// FindByNameFold compara por igualdad contra nameFold (entity.FoldName); nada de expresiones regulares.
func (r *CategoryRepo) FindByNameFold(ctx context.Context, name, excludeID string) (*entity.Category, error) {
	filter := bson.M{"nameFold": entity.FoldName(name)}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return r.findOne(ctx, "find category by name", filter)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.col.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"name":      c.Name,
		"nameFold":  entity.FoldName(c.Name),
		"status":    c.Status,
		"updatedAt": c.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// UpdateStatusMany devuelve ModifiedCount: los documentos que ya tenían ese estado no cuentan.
func (r *CategoryRepo) UpdateStatusMany(ctx context.Context, ids []string, status string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("update categories status: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *CategoryRepo) ReassignParent(ctx context.Context, fromParentID, toParentID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"parent": fromParentID},
		bson.M{"$set": bson.M{"parent": parentValue(toParentID), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("reassign category parent: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) findOne(ctx context.Context, op string, filter bson.M, opts ...*options.FindOneOptions) (*entity.Category, error) {
	var d categoryDoc
	if err := r.col.FindOne(ctx, filter, opts...).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d.toEntity(), nil
}
