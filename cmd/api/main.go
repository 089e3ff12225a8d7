package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/categorias-api/docs"
	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/usecase"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/internal/infrastructure/cache"
	"github.com/jhoicas/categorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/categorias-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/categorias-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/categorias-api/internal/interfaces/http"
	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// @title        Multi-Level Category Management API
// @version      1.0
// @description  Árbol de categorías multinivel con autenticación JWT.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, closeStores := openStores(ctx, cfg, log)
	defer closeStores()

	var treeCache usecase.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché deshabilitada")
		} else {
			defer rc.Close()
			treeCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché del árbol en Redis")
		}
	}

	categoryUC := usecase.NewCategoryUseCase(st.categories, st.tx, treeCache, log.Component("categories"))
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: cfg.HTTP.CORSOrigins != "*",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many requests from this IP, please try again later.",
			})
		},
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.App.SwaggerFile,
		Path:     "docs",
		Title:    "Multi-Level Category Management API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:   categoryUC,
		AuthUC:       authUC,
		Logger:       log,
		JWTSecret:    cfg.JWT.Secret,
		SecureCookie: cfg.App.IsProduction(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

type stores struct {
	categories repository.CategoryRepository
	users      repository.UserRepository
	tx         usecase.CategoryTxRunner
}

// openStores abre el backend elegido por DB_DRIVER y devuelve repos, runner y función de cierre.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (stores, func()) {
	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("índices de MongoDB")
		}
		return stores{
				categories: mongodb.NewCategoryRepository(db),
				users:      mongodb.NewUserRepository(db),
				tx:         mongodb.NewTxRunner(client, db),
			}, func() {
				_ = client.Disconnect(context.Background())
			}

	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return stores{
			categories: memory.NewCategoryRepository(store),
			users:      memory.NewUserRepository(store),
			tx:         memory.NewTxRunner(store),
		}, func() {}

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("pgx"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.ApplyMigrations(pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return stores{
			categories: postgres.NewCategoryRepository(pool),
			users:      postgres.NewUserRepository(pool),
			tx:         postgres.NewTxRunner(pool),
		}, pool.Close
	}
}
