package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/api/gemini"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/api/handlers"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/config"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/repository"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/service"
	"github.com/aomkarpatil97-boop/power-network-platform/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	logger.Info("Starting powerNest platform", zap.String("port", cfg.ServerPort))

	// 创建 context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 连接数据库
	db, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	defer db.Close()

	// 执行数据库迁移和种子数据
	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if err := db.Seed(ctx); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}
	logger.Info("Database migrated successfully")

	// 连接 Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	// 创建 Repository
	stationRepo := repository.NewStationRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	sessionStore := repository.NewSessionStore(redisClient, logger, cfg.SessionTTL)

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	wsHub.SetInitDataProvider(func() *ws.InitData {
		stations, err := stationRepo.List(ctx, "")
		if err != nil {
			logger.Error("Failed to load stations for init data", zap.Error(err))
		}
		services, err := serviceRepo.List(ctx)
		if err != nil {
			logger.Error("Failed to load services for init data", zap.Error(err))
		}
		return &ws.InitData{Stations: stations, Services: services}
	})
	go wsHub.Run()

	// 创建业务服务
	charger := service.NewChargeSimulator(cfg, logger, sessionStore, wsHub)
	sessionService := service.NewSessionService(cfg, logger, sessionStore, wsHub, charger)
	bookingService := service.NewBookingService(logger, sessionStore, wsHub, charger)

	// 创建 Gemini 助手客户端
	advisor, err := gemini.NewAdvisor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Fatal("Failed to create gemini advisor", zap.Error(err))
	}
	if !advisor.IsConfigured() {
		logger.Warn("Gemini api key not set, assistant will return fallback answers")
	}

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(
		logger,
		stationRepo,
		serviceRepo,
		sessionService,
		bookingService,
		advisor,
		wsHub,
	)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// 注册路由
	handler.RegisterRoutes(router)

	// 启动 HTTP 服务器
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", server.Addr))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 停止充电模拟器
	charger.StopAll()

	// 优雅关闭
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}

// corsMiddleware CORS 中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
