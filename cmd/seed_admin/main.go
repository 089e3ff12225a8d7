// seed_admin crea el primer administrador o promueve a Admin a un usuario existente.
//
// Uso: go run ./cmd/seed_admin <email> [password]
// También lee ADMIN_EMAIL y ADMIN_PASSWORD. El password solo se exige si el usuario no existe.
// Usa el mismo DB_DRIVER que la API (postgres o mongo).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/categorias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

func main() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin <email> [password]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var users repository.UserRepository
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, logger.Nop())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.ApplyMigrations(pool); err != nil {
				fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
				os.Exit(1)
			}
		}
		users = postgres.NewUserRepository(pool)
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a MongoDB: %v\n", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "Índices de MongoDB: %v\n", err)
			os.Exit(1)
		}
		users = mongodb.NewUserRepository(db)
	default:
		fmt.Fprintf(os.Stderr, "DB_DRIVER %q no persiste datos, nada que sembrar\n", cfg.DB.Driver)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	created, err := uc.EnsureAdmin(ctx, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("Administrador %s creado\n", email)
		return
	}
	fmt.Printf("Usuario %s con rol Admin\n", email)
}
