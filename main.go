package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacetact/config"
	"spacetact/cron"
	"spacetact/handlers"
	"spacetact/middleware"
	"spacetact/routes"
	"spacetact/services/chat"
	ai "spacetact/services/intelligence"
	"spacetact/services/leads"
	"spacetact/services/safety"
	"spacetact/services/session"
	"spacetact/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const modelSessionTTL = 30 * time.Minute

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Session store.
	var store session.Store
	var memStore *session.MemoryStore
	var redisClients []*redis.Client
	switch config.AppConfig.SessionStore {
	case "redis":
		client := utils.GetSessionCacheClient()
		redisClients = append(redisClients, client)
		store = session.NewRedisStore(client, config.AppConfig.SessionTTL)
	default:
		memStore = session.NewMemoryStore(config.AppConfig.SessionTTL)
		store = memStore
	}
	logger.Info("Session store ready", zap.String("kind", config.AppConfig.SessionStore))

	apiKey := config.ModelAPIKey()
	utils.StartHealthMonitor(rootCtx, redisClients, apiKey != "")

	// Model gateway.
	gateway, err := ai.NewGeminiGateway(rootCtx, apiKey, config.AppConfig.GeminiModel, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model gateway: %v", err)
	}

	forwarder := leads.NewWebhookForwarder(config.LeadWebhook(), config.AppConfig.LeadWebhookTimeout, logger)
	filter := safety.NewFilter(logger, ai.ForbiddenOverload, ai.ForbiddenEmailDirectly, ai.ForbiddenManualEmail)

	catalog, err := chat.LoadCatalog()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load service catalog: %v", err)
	}

	interceptor := chat.NewInterceptor(gateway, forwarder, filter, catalog, logger)
	chatService := &chat.DefaultChatService{
		Controller:  chat.NewController(gateway, interceptor, logger),
		Store:       store,
		Catalog:     catalog,
		CalendarURL: config.AppConfig.CalEmbedURL,
		Logger:      logger,
	}
	chatHandler := handlers.NewChatHandler(chatService)

	tasks := []cron.Task{{Name: "model_sessions", Run: func() int { return gateway.Prune(modelSessionTTL) }}}
	if memStore != nil {
		tasks = append(tasks, cron.Task{Name: "chat_sessions", Run: memStore.Sweep})
	}
	janitor, err := cron.NewJanitor("5m", logger, tasks...)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to schedule janitor: %v", err)
	}
	janitor.Start()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		// Chat endpoints.
		OpenChat:    chatHandler.OpenChat,
		SendMessage: chatHandler.SendMessage,
		EndSession:  chatHandler.EndSession,
		Services:    chatHandler.Services,

		// Operational endpoints.
		Health:  handlers.HealthHandler,
		Metrics: gin.WrapH(promhttp.Handler()),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()
	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := forwarder.Drain(ctx); err != nil {
		logger.Sugar().Warnf("main: lead deliveries still pending at shutdown: %v", err)
	}
	if err := gateway.Close(); err != nil {
		logger.Sugar().Warnf("main: closing model client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
