package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/sbilibin2017/blog-store/internal/events"
	"github.com/sbilibin2017/blog-store/internal/handlers"
	"github.com/sbilibin2017/blog-store/internal/hasher"
	"github.com/sbilibin2017/blog-store/internal/jwt"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/middlewares"
	"github.com/sbilibin2017/blog-store/internal/migrations"
	"github.com/sbilibin2017/blog-store/internal/repositories"
	"github.com/sbilibin2017/blog-store/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title blog-store API
// @version 1.0.0
// @description Users, posts and comments of a blogging platform
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		bcryptCost,
		jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		bcryptCost,
		jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, hashing, JWT and Kafka configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	bcryptCost int,
	jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers, kafkaTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Password hashing
	if bcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(hasher.DefaultConfig().Cost))); err != nil {
		return
	}

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Kafka config, publishing is off without brokers
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "blog-events")

	return
}

// run initializes the logger, database, migrations, Kafka publisher and HTTP
// server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	bcryptCost int,
	jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers, kafkaTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Kafka publisher
	publisher := events.NewKafkaPublisher(kafkaBrokers, kafkaTopic)
	defer publisher.Close()

	// Password hasher and JWT
	pwHasher := hasher.New(hasher.Config{Cost: bcryptCost})
	jwt := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, middlewares.GetTxFromContext, pwHasher)
	postRepo := repositories.NewPostRepository(db, middlewares.GetTxFromContext)
	commentRepo := repositories.NewCommentRepository(db, middlewares.GetTxFromContext)

	// Initialize services
	authService := services.NewAuthService(userRepo, pwHasher, jwt)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))

		// Public routes
		r.Post("/login", handlers.NewLoginHandler(authService))

		r.Post("/users", handlers.NewCreateUserHandler(userRepo))
		r.Get("/users/{id}", handlers.NewGetUserHandler(userRepo))
		r.Get("/users/by-username/{username}", handlers.NewGetUserByUsernameHandler(userRepo))
		r.Patch("/users/{id}", handlers.NewUpdateUserHandler(userRepo))
		r.Delete("/users/{id}", handlers.NewDeleteUserHandler(userRepo))
		r.Get("/users/{id}/posts", handlers.NewListUserPostsHandler(postRepo))

		r.Get("/posts/{id}", handlers.NewGetPostHandler(postRepo))
		r.Patch("/posts/{id}", handlers.NewUpdatePostHandler(postRepo))
		r.Delete("/posts/{id}", handlers.NewDeletePostHandler(postRepo, publisher))
		r.Get("/posts/{id}/comments", handlers.NewListPostCommentsHandler(commentRepo))

		r.Get("/comments/{id}", handlers.NewGetCommentHandler(commentRepo))
		r.Patch("/comments/{id}", handlers.NewUpdateCommentHandler(commentRepo))
		r.Delete("/comments/{id}", handlers.NewDeleteCommentHandler(commentRepo, publisher))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwt))
			r.Post("/posts", handlers.NewCreatePostHandler(postRepo, publisher))
			r.Post("/posts/{id}/comments", handlers.NewCreateCommentHandler(commentRepo, publisher))
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
