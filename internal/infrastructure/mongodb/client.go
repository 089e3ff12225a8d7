// Package mongodb implementa los repositorios sobre MongoDB (DB_DRIVER=mongo).
// Las transacciones usan sesiones y requieren un replica set.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/categorias-api/pkg/config"
)

// Nombres de colecciones.
const (
	CategoriesCollection = "categories"
	UsersCollection      = "users"
)

// Connect abre el cliente y verifica la conexión con ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices de ambas colecciones (idempotente).
// También rellena nameFold en categorías guardadas antes de que existiera el campo.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	categories := db.Collection(CategoriesCollection)
	_, err := categories.UpdateMany(ctx,
		bson.M{"nameFold": bson.M{"$exists": false}},
		mongo.Pipeline{{{Key: "$set", Value: bson.M{"nameFold": bson.M{"$toLower": "$name"}}}}},
	)
	if err != nil {
		return fmt.Errorf("rellenar nameFold: %w", err)
	}

	_, err = categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		{Keys: bson.D{{Key: "nameFold", Value: 1}}, Options: options.Index().SetName("nameFold")},
		{Keys: bson.D{{Key: "parent", Value: 1}}, Options: options.Index().SetName("parent")},
	})
	if err != nil {
		return fmt.Errorf("índices de categorías: %w", err)
	}
	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("índices de usuarios: %w", err)
	}
	return nil
}
