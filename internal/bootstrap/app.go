// Package bootstrap loads configuration and assembles the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JuanLadeira/task-challenge/internal/auth"
	httpHandler "github.com/JuanLadeira/task-challenge/internal/handler/http"
	uiHandler "github.com/JuanLadeira/task-challenge/internal/handler/ui"
	gormpersistence "github.com/JuanLadeira/task-challenge/internal/infra/persistence/gorm"
	"github.com/JuanLadeira/task-challenge/internal/infra/setup"
	"github.com/JuanLadeira/task-challenge/internal/middleware"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

// Config holds everything loaded from the environment at process start. It
// is read-only after LoadConfig returns.
type Config struct {
	SecretKey       string
	Algorithm       string
	AccessTokenTTL  int // minutes
	DatabaseURL     string
	ServerPort      string
	LogLevel        string
	AppEnv          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimitMax    int
	RateLimitWindow time.Duration
	DBRetryAttempts int
	DBRetryInterval time.Duration
	TemplateGlob    string
	StaticDir       string
}

// LoadConfig reads configuration from the environment, with a .env file as
// fallback.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SecretKey:       os.Getenv("SECRET_KEY"),
		Algorithm:       os.Getenv("ALGORITHM"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		AppEnv:          os.Getenv("APP_ENV"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AccessTokenTTL:  30,
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		DBRetryAttempts: 10,
		DBRetryInterval: 2 * time.Second,
		TemplateGlob:    "web/templates/*.html",
		StaticDir:       "web/static",
	}

	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", raw)
		}
		cfg.AccessTokenTTL = minutes
	}
	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("environment variable SECRET_KEY must be set")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DATABASE_URL must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App aggregates the long-lived components so Shutdown can reach them.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	HTTPServer  *http.Server
}

// NewApp initializes every component and wires the routes. Nothing is
// listening until Start is called.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.StandardLogger()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded")

	db, err := setup.InitDB(cfg.DatabaseURL, cfg.DBRetryAttempts, cfg.DBRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	// Redis is optional: without it the rate limiter is simply not mounted.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		log.Info("Redis client initialized")
	}

	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	userRepo := gormpersistence.NewGormUserRepository(db)
	todoRepo := gormpersistence.NewGormTodoRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	todoService := service.NewTodoService(todoRepo)

	authHandler := httpHandler.NewAuthHandler(authService)
	userHandler := httpHandler.NewUserHandler(userService)
	todoHandler := httpHandler.NewTodoHandler(todoService)
	uiAuthHandler := uiHandler.NewAuthHandler(authService)
	uiTodoHandler := uiHandler.NewTodoHandler(todoService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	router.LoadHTMLGlob(cfg.TemplateGlob)
	router.Static("/static", cfg.StaticDir)

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	cookieAuth := middleware.CookieAuth(tokens, userRepo)

	router.POST("/auth/login", authHandler.Login)

	apiTodos := router.Group("/api/todos", requireAuth)
	{
		apiTodos.POST("/", todoHandler.Create)
		apiTodos.GET("/", todoHandler.List)
		apiTodos.GET("/:id", todoHandler.Get)
		apiTodos.PUT("/:id", todoHandler.Update)
		apiTodos.DELETE("/:id", todoHandler.Delete)
	}

	users := router.Group("/users")
	{
		users.POST("/", userHandler.Create)
		users.GET("/", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	router.GET("/", cookieAuth, uiTodoHandler.Index)
	uiTodos := router.Group("/ui/todos", cookieAuth)
	{
		uiTodos.POST("", uiTodoHandler.Create)
		uiTodos.PUT("/:id", uiTodoHandler.Toggle)
		uiTodos.DELETE("/:id", uiTodoHandler.Delete)
	}
	uiAuth := router.Group("/ui/auth")
	{
		uiAuth.GET("/login", uiAuthHandler.LoginForm)
		uiAuth.POST("/login", uiAuthHandler.Login)
		uiAuth.POST("/logout", uiAuthHandler.Logout)
		uiAuth.GET("/register", uiAuthHandler.RegisterForm)
	}

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	app := &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		HTTPServer: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: router,
		},
	}
	return app, nil
}

// Start launches the HTTP server in the background.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server listening on %s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
}

// Shutdown stops the HTTP server and closes the external connections.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete")
}

// LoggerMiddleware logs every request with status, latency and client info.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}
