// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"diaspora-portal-service/internal/config"
	"diaspora-portal-service/internal/db"
	"diaspora-portal-service/internal/domain/auth"
	authHandler "diaspora-portal-service/internal/handlers/auth"
	chatHandler "diaspora-portal-service/internal/handlers/chatbot"
	kbHandler "diaspora-portal-service/internal/handlers/kb"
	rateHandler "diaspora-portal-service/internal/handlers/rates"
	shareholderHandler "diaspora-portal-service/internal/handlers/shareholder"
	wsHandler "diaspora-portal-service/internal/handlers/websocket"
	"diaspora-portal-service/internal/middleware"
	"diaspora-portal-service/internal/pkg/session"
	"diaspora-portal-service/internal/pkg/token"
	"diaspora-portal-service/internal/repository/memory"
	"diaspora-portal-service/internal/repository/postgres"
	authUsecase "diaspora-portal-service/internal/service/auth"
	"diaspora-portal-service/internal/service/chatbot"
	kbUsecase "diaspora-portal-service/internal/service/kb"
	ratesUsecase "diaspora-portal-service/internal/service/rates"
	shareholderUsecase "diaspora-portal-service/internal/service/shareholder"
	"diaspora-portal-service/internal/websocket"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool  *pgxpool.Pool
	cache *redis.Client

	hubCancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	if cfg.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := s.buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	if err := db.RunMigrations(ctx, s.cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.cache = redisClient
	log.Println("[REDIS] connected")

	// ----- Token codec & session plumbing -----
	codec, err := token.NewCodec(s.cfg.Auth, logger)
	if err != nil {
		return fmt.Errorf("failed to build token codec: %w", err)
	}

	resolver := session.NewResolver(codec, s.cfg.Auth.CookieName, logger)
	registry := session.NewRegistry(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	rateRepo := postgres.NewRateRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	holdingRepo := postgres.NewHoldingRepository(pool)

	creds, err := s.buildCredentialStore(pool)
	if err != nil {
		return fmt.Errorf("failed to build credential store: %w", err)
	}

	// ----- Services -----
	authService := authUsecase.NewAuthService(creds, codec, registry, rateLimiter, logger)
	rateService := ratesUsecase.NewRateService(rateRepo, redisClient, logger)
	articleService := kbUsecase.NewArticleService(articleRepo, logger)
	dashboardService := shareholderUsecase.NewDashboardService(holdingRepo, logger)
	bot := chatbot.New(chatbot.DefaultRules(), chatbot.DefaultFallback)

	// ----- Chat hub -----
	hub := websocket.NewHub(bot, logger)
	hubCtx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	go hub.Run(hubCtx)

	// ----- Handlers & middleware -----
	sessionMW := middleware.NewSessionMiddleware(resolver, s.cfg.Auth.LoginPath)

	handlers := &Handlers{
		Auth:        authHandler.NewAuthHandler(authService, s.cfg.Auth, logger),
		Rates:       rateHandler.NewRateHandler(rateService),
		KB:          kbHandler.NewArticleHandler(articleService),
		Shareholder: shareholderHandler.NewDashboardHandler(dashboardService),
		Chat:        chatHandler.NewChatHandler(bot),
		WS:          wsHandler.NewWebSocketHandler(hub, resolver, logger),
		Session:     sessionMW,
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, handlers)

	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown releases the connection pools and stops the chat hub.
func (s *Server) Shutdown(_ context.Context) {
	if s.hubCancel != nil {
		s.hubCancel()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Server) buildLogger() (*zap.Logger, error) {
	if s.cfg.Environment == config.EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// buildCredentialStore picks the credential backend: PostgreSQL in
// production, the fixed demo table otherwise. The demo hashes are derived
// at startup so the plaintext never ships in a constant.
func (s *Server) buildCredentialStore(pool *pgxpool.Pool) (authUsecase.CredentialStore, error) {
	if s.cfg.Environment == config.EnvProduction {
		return postgres.NewCredentialRepository(pool), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return memory.NewCredentialStore([]*auth.Credential{
		{ID: "usr_01", Email: "amina.diallo@example.com", FullName: "Amina Diallo", PasswordHash: string(hash), Status: "active"},
		{ID: "usr_02", Email: "kwame.mensah@example.com", FullName: "Kwame Mensah", PasswordHash: string(hash), Status: "active"},
	}), nil
}
