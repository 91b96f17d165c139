package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/wyfcoding/marketplace/internal/admin/application"
	adminhttp "github.com/wyfcoding/marketplace/internal/admin/interfaces/http"
	cartapp "github.com/wyfcoding/marketplace/internal/cart/application"
	cartresolver "github.com/wyfcoding/marketplace/internal/cart/infrastructure/catalog"
	carthttp "github.com/wyfcoding/marketplace/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/marketplace/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/marketplace/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/marketplace/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/marketplace/internal/catalog/interfaces/http"
	"github.com/wyfcoding/marketplace/internal/copywriter"
	notifapp "github.com/wyfcoding/marketplace/internal/notification/application"
	notifdomain "github.com/wyfcoding/marketplace/internal/notification/domain"
	"github.com/wyfcoding/marketplace/internal/notification/infrastructure/alert"
	notifmysql "github.com/wyfcoding/marketplace/internal/notification/infrastructure/persistence/mysql"
	notifhttp "github.com/wyfcoding/marketplace/internal/notification/interfaces/http"
	orderapp "github.com/wyfcoding/marketplace/internal/order/application"
	orderdomain "github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/marketplace/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/marketplace/internal/order/interfaces/http"
	"github.com/wyfcoding/marketplace/internal/snapshot"
	userapp "github.com/wyfcoding/marketplace/internal/user/application"
	userdomain "github.com/wyfcoding/marketplace/internal/user/domain"
	usermysql "github.com/wyfcoding/marketplace/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/wyfcoding/marketplace/internal/user/interfaces/http"
	"github.com/wyfcoding/marketplace/pkg/cache"
	"github.com/wyfcoding/marketplace/pkg/config"
	"github.com/wyfcoding/marketplace/pkg/db"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/mq"
	"github.com/wyfcoding/marketplace/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/marketplace/config.toml", "config file path")

func main() {
	flag.Parse()
	ctx := context.Background()

	// 1. 配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 3. 指标
	m := metrics.New("marketplace")

	// 4. 基础设施
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}

	if cfg.Environment == "dev" {
		if err := database.AutoMigrate(
			&catalogdomain.Shop{},
			&catalogdomain.Product{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&notifdomain.Notification{},
			&userdomain.User{},
			&userdomain.SavedProduct{},
		); err != nil {
			logger.Error(ctx, "failed to migrate database", "error", err)
		}
	}

	// 快照存储：Redis 不可用时退回进程内存储，店面功能不受影响
	var store snapshot.Store
	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Warn(ctx, "redis unavailable, snapshots kept in memory only", "error", err)
		store = snapshot.NewMemoryStore()
	} else {
		store = snapshot.NewRedisStore(redisCache)
		limiter = ratelimit.NewRedisLimiter(redisCache.Client())
		defer redisCache.Close()
	}
	adapter := snapshot.NewAdapter(store, cfg.Snapshot.KeyPrefix, m)
	// 镜像里的订单和通知仅作启动核对，数据库才是权威账本
	state := adapter.Rehydrate(ctx)
	logger.Info(ctx, "snapshot rehydrated",
		"orders", len(state.Orders),
		"notifications", len(state.Notifications),
		"shops", len(state.Shops),
		"products", len(state.Products))

	var publisher orderdomain.EventPublisher = messaging.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Warn(ctx, "kafka unavailable, order events disabled", "error", err)
		} else {
			publisher = messaging.NewKafkaPublisher(producer, cfg.Kafka.OrderTopic)
			defer producer.Close()
		}
	}

	// 5. 仓储
	productRepo := catalogmysql.NewProductRepository(database.DB)
	shopRepo := catalogmysql.NewShopRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)
	notifRepo := notifmysql.NewNotificationRepository(database.DB)
	userRepo := usermysql.NewUserRepository(database.DB)

	// 6. 应用服务
	writer := copywriter.New(cfg.Copywriter, m)
	catalogSvc := catalogapp.NewService(productRepo, shopRepo, writer, adapter)
	if err := catalogSvc.EnsureSeeded(ctx, state.Shops, state.Products); err != nil {
		logger.Error(ctx, "failed to seed catalog", "error", err)
	}

	cartSvc := cartapp.NewService(cartresolver.NewResolver(catalogSvc), adapter)

	board := alert.NewToastBoard(time.Duration(cfg.Notification.ToastTTLMillis) * time.Millisecond)
	chime := alert.NewChime(cfg.Notification.ChimeURL)
	desktop := alert.NewDesktop(cfg.Notification.DesktopWebhookURL, alert.Permission(cfg.Notification.DesktopPermission))
	desktop.Probe(ctx)
	notifSvc := notifapp.NewService(
		notifRepo,
		notifdomain.NewAliasTable(cfg.Notification.Aliases),
		board, chime, desktop,
		adapter, m,
	)

	commissionRate, err := decimal.NewFromString(cfg.Fees.CommissionRate)
	if err != nil {
		logger.Fatal(ctx, "invalid commission rate", "rate", cfg.Fees.CommissionRate, "error", err)
	}
	orderSvc := orderapp.NewService(
		orderRepo,
		orderdomain.FeeSchedule{DeliveryFee: cfg.Fees.DeliveryFee, PlatformFee: cfg.Fees.PlatformFee},
		commissionRate,
		notifSvc, publisher, adapter, m,
	)

	savedRepo := usermysql.NewSavedProductRepository(database.DB)
	userSvc := userapp.NewService(userRepo, savedRepo, catalogSvc, adapter, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)
	adminSvc := adminapp.NewService(shopRepo)

	adapter.Bind(cartSvc, orderSvc, notifSvc)

	// 7. 接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.GinLogging(),
		middleware.GinRecovery(),
		middleware.CORS(),
		middleware.HTTPMetrics(m),
	)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, m.Handler())
	}

	catalogHandler := cataloghttp.NewCatalogHandler(catalogSvc)
	cartHandler := carthttp.NewCartHandler(cartSvc)
	orderHandler := orderhttp.NewOrderHandler(orderSvc, cartSvc)
	notifHandler := notifhttp.NewNotificationHandler(notifSvc, board)
	userHandler := userhttp.NewUserHandler(userSvc)
	adminHandler := adminhttp.NewAdminHandler(adminSvc)

	public := engine.Group("")
	catalogHandler.RegisterPublicRoutes(public)

	// 登录注册按客户端 IP 限流
	authPublic := engine.Group("", middleware.RateLimit(limiter, ratelimit.PerMinute(20)))
	userHandler.RegisterPublicRoutes(authPublic)

	// 浏览、加购与结账对访客开放
	shopper := engine.Group("", middleware.JWTAuth(cfg.Auth.JWTSecret, true))
	cartHandler.RegisterRoutes(shopper)
	orderHandler.RegisterRoutes(shopper)

	authed := engine.Group("", middleware.JWTAuth(cfg.Auth.JWTSecret, false))
	userHandler.RegisterRoutes(authed)

	seller := engine.Group("", middleware.JWTAuth(cfg.Auth.JWTSecret, false), middleware.RequireRole("SELLER"))
	catalogHandler.RegisterSellerRoutes(seller)
	orderHandler.RegisterSellerRoutes(seller)
	notifHandler.RegisterRoutes(seller)

	admin := engine.Group("", middleware.JWTAuth(cfg.Auth.JWTSecret, false), middleware.RequireRole("ADMIN"))
	adminHandler.RegisterRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	// 8. 启动与优雅关闭
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(ctx, "HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(ctx, "shutting down server")
		case <-gctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
	_ = database.Close()
}
