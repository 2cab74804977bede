package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"marketplace-server/auth"
	"marketplace-server/cache"
	"marketplace-server/confs"
	"marketplace-server/db"
	"marketplace-server/handlers"
	httpHandler "marketplace-server/handlers/http"
	"marketplace-server/repositories"
	"marketplace-server/usecases"
	"marketplace-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg      *confs.Config
	app      *gin.Engine
	db       db.Database
	log      *zap.Logger
	http     *http.Server
	registry *ws.Registry
	rdb      *redis.Client
}

func NewServer(cfg *confs.Config, database db.Database, log *zap.Logger) *Server {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		app:      gin.New(),
		db:       database,
		log:      log,
		registry: ws.NewRegistry(log.Named("registry")),
	}
	if cfg.RedisAddr != "" {
		s.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	s.routes()

	s.http = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.app,
	}
	return s
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Registry returns the live channel registry.
func (s *Server) Registry() *ws.Registry {
	return s.registry
}

func (s *Server) routes() {
	s.app.Use(gin.Recovery())
	s.app.Use(httpHandler.RequestLogger(s.log.Named("http")))

	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	productRepo := repositories.NewProductPgRepository(s.db)
	sellRepo := repositories.NewSellPgRepository(s.db)
	messageRepo := repositories.NewMessagePgRepository(s.db)

	// Identity
	tokens := auth.NewTokenService(s.cfg.TokenKey, s.cfg.TokenTTL)
	hasher := auth.NewBcryptHasher(s.cfg.BcryptCost)

	// Optional product cache; a nil *ProductCache must not reach the interfaces
	var (
		productCache usecases.ProductCache
		cacheStats   handlers.CacheStats
	)
	if s.rdb != nil {
		pc := cache.NewProductCache(s.rdb, s.cfg.CacheTTL)
		productCache, cacheStats = pc, pc
	}

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, hasher, tokens)
	productUseCase := usecases.NewProductUseCase(productRepo, productCache, s.log.Named("products"))
	sellUseCase := usecases.NewSellUseCase(sellRepo, userRepo, productRepo)
	messageUseCase := usecases.NewMessageUseCase(messageRepo, userRepo)

	// Realtime chat; hardened admission checks the same session as REST
	var verifier ws.TokenVerifier
	if s.cfg.WSRequireToken {
		verifier = userUseCase
	}
	relay := ws.NewRelay(messageRepo, s.registry, s.log.Named("relay"))
	wsHandler := handlers.NewWSHandler(s.registry, ws.NewAdmission(verifier), relay, s.log.Named("ws"), handlers.WSOptions{
		MaxMessageBytes: s.cfg.WSMaxMessageBytes,
		PingInterval:    s.cfg.WSPingInterval,
	})

	// Initialize handlers
	loginHandler := httpHandler.NewLoginHandler(userUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	productHandler := httpHandler.NewProductHandler(productUseCase)
	sellHandler := httpHandler.NewSellHandler(sellUseCase)
	messageHandler := httpHandler.NewMessageHandler(messageUseCase, relay)
	cacheHandler := handlers.NewCacheHandler(cacheStats, s.log.Named("cache"))

	requireAuth := httpHandler.AuthMiddleware(userUseCase)

	api := s.app.Group("/api")
	{
		// Public routes
		api.POST("/login", loginHandler.Login)
		api.POST("/users/register", userHandler.Register)
		api.GET("/chats", wsHandler.HandleChatWS)

		private := api.Group("", requireAuth)

		private.GET("/logout", loginHandler.Logout)
		private.GET("/chats/connected", wsHandler.GetConnectedUsers)
		private.GET("/chats/connected/:id", wsHandler.GetUserPresence)
		private.GET("/cache/stats", cacheHandler.GetCacheStats)

		users := private.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		products := private.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetAllProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		sells := private.Group("/sells")
		{
			sells.POST("", sellHandler.CreateSell)
			sells.GET("", sellHandler.GetAllSells)
			sells.GET("/:id", sellHandler.GetSell)
			sells.PUT("/:id", sellHandler.UpdateSell)
			sells.DELETE("/:id", sellHandler.DeleteSell)
		}

		messages := private.Group("/messages")
		{
			messages.POST("", messageHandler.CreateMessage)
			messages.GET("", messageHandler.GetAllMessages)
			messages.GET("/:id", messageHandler.GetMessage)
			messages.GET("/user/:id", messageHandler.GetUserMessages)
			messages.GET("/user/:id/sent", messageHandler.GetSentMessages)
			messages.GET("/user/:id/received", messageHandler.GetReceivedMessages)
			messages.DELETE("/:id", messageHandler.DeleteMessage)
		}
	}
}

// Start serves HTTP until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr), zap.Bool("redis_cache", s.rdb != nil))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones, then closes
// every chat channel. Hijacked websocket connections are not tracked by
// http.Server, so the registry has to close them.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.registry.CloseAll()
	if s.rdb != nil {
		if cerr := s.rdb.Close(); cerr != nil {
			s.log.Warn("close redis client", zap.Error(cerr))
		}
	}
	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
