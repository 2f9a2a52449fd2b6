package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/dumeirei/hotel-management/docs"
	"github.com/dumeirei/hotel-management/internal/common/config"
	"github.com/dumeirei/hotel-management/internal/common/crypto"
	"github.com/dumeirei/hotel-management/internal/common/jwt"
	"github.com/dumeirei/hotel-management/internal/common/metrics"
	commonMiddleware "github.com/dumeirei/hotel-management/internal/common/middleware"
	authHandler "github.com/dumeirei/hotel-management/internal/handler/auth"
	customerHandler "github.com/dumeirei/hotel-management/internal/handler/customer"
	paymentHandler "github.com/dumeirei/hotel-management/internal/handler/payment"
	reportHandler "github.com/dumeirei/hotel-management/internal/handler/report"
	reservationHandler "github.com/dumeirei/hotel-management/internal/handler/reservation"
	roomHandler "github.com/dumeirei/hotel-management/internal/handler/room"
	"github.com/dumeirei/hotel-management/internal/middleware"
	"github.com/dumeirei/hotel-management/internal/repository"
	"github.com/dumeirei/hotel-management/internal/scheduler"
	authService "github.com/dumeirei/hotel-management/internal/service/auth"
	customerService "github.com/dumeirei/hotel-management/internal/service/customer"
	"github.com/dumeirei/hotel-management/internal/service/maintenance"
	paymentService "github.com/dumeirei/hotel-management/internal/service/payment"
	reportService "github.com/dumeirei/hotel-management/internal/service/report"
	reservationService "github.com/dumeirei/hotel-management/internal/service/reservation"
	roomService "github.com/dumeirei/hotel-management/internal/service/room"
	pkgmqtt "github.com/dumeirei/hotel-management/pkg/mqtt"
)

// application 持有需要随进程启停的组件
type application struct {
	log       *zap.Logger
	scheduler *scheduler.Scheduler
	notifier  *reservationService.Notifier
	mqtt      *pkgmqtt.Client
}

func (a *application) start() {
	if a.scheduler != nil {
		a.scheduler.Start()
		a.log.Info("Scheduler started", zap.Int("tasks", len(a.scheduler.Tasks())))
	}
}

func (a *application) stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	// 等待未完成的确认通知
	a.notifier.Wait()
	if a.mqtt != nil {
		a.mqtt.Disconnect()
	}
}

// setupRouter 组装依赖并注册路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) (*application, error) {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Path)
	}

	// 外部服务
	uploader, err := newUploader(cfg)
	if err != nil {
		return nil, err
	}
	smsSender, err := newSMSSender(&cfg.SMS)
	if err != nil {
		return nil, err
	}
	mail, err := newMailer(&cfg.Mail)
	if err != nil {
		return nil, err
	}
	mqttClient := newMQTTClient(&cfg.MQTT, log)

	// 房间状态事件，未启用 MQTT 时只记录指标
	var publisher roomService.RoomPublisher
	if mqttClient != nil {
		publisher = pkgmqtt.NewRoomPublisher(mqttClient, cfg.MQTT.TopicPrefix)
	}
	statusNotifier := roomService.NewEventNotifier(m, publisher)

	// 会话存储
	var sessions authService.SessionStore
	if redisClient != nil {
		sessions = authService.NewRedisSessionStore(redisClient, cfg.Session.KeyPrefix)
	} else {
		sessions = authService.NewMemorySessionStore()
	}

	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:           cfg.JWT.Secret,
		AccessExpireTime: cfg.JWT.AccessTokenDuration(),
		Issuer:           cfg.JWT.Issuer,
	})

	// 初始化服务
	authSvc := authService.NewAuthService(
		repository.NewUserRepository(db),
		jwtManager,
		crypto.NewPasswordHasher(cfg.Crypto.BcryptCost),
		sessions,
	)
	customerSvc := customerService.NewCustomerService(repository.NewCustomerRepository(db))
	roomSvc := roomService.NewRoomService(repository.NewRoomRepository(db), uploader, statusNotifier)
	confirmer := reservationService.NewNotifier(smsSender, mail, m, reservationService.NotifierConfig{
		HotelName:   cfg.Hotel.Name,
		SMSTemplate: cfg.SMS.BookingTemplate,
	})
	reservationSvc := reservationService.NewReservationService(db,
		reservationService.WithStatusNotifier(statusNotifier),
		reservationService.WithMetrics(m),
		reservationService.WithConfirmer(confirmer),
	)
	paymentSvc := paymentService.NewPaymentService(db, m)
	reportSvc := reportService.NewReportService(db)
	repairSvc := maintenance.NewRepairService(db, m)

	// 初始化处理器
	authH := authHandler.NewHandler(authSvc, authHandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})
	customerH := customerHandler.NewHandler(customerSvc)
	roomH := roomHandler.NewHandler(roomSvc)
	reservationH := reservationHandler.NewHandler(reservationSvc)
	paymentH := paymentHandler.NewHandler(paymentSvc)
	reportH := reportHandler.NewHandler(reportSvc)

	authCfg := &middleware.AuthConfig{Verifier: authSvc, CookieName: cfg.Session.CookieName}
	opLogger := commonMiddleware.NewOperationLogger(repository.NewOperationLogRepository(db))

	// 全局中间件
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.RequestSizeLimiter(cfg.Upload.MaxSize + 1<<20))
	if cfg.Tracing.Enabled {
		r.Use(commonMiddleware.Tracing(&commonMiddleware.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			SkipPaths:   []string{"/health", "/ping", "/ready", cfg.Metrics.Path},
		}))
		r.Use(commonMiddleware.InjectTraceContext())
	}
	if m != nil {
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 本地上传的房间图片
	if cfg.Upload.Provider == "" || cfg.Upload.Provider == "local" {
		r.Static(cfg.Upload.URLPrefix, cfg.Upload.LocalDir)
	}

	var limiters []gin.HandlerFunc
	var quickLimiters []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiters = append(limiters, middleware.IPRateLimit(redisClient, m, cfg.RateLimit.LoginPerMinute, time.Minute))
		quickLimiters = append(quickLimiters, middleware.IPRateLimit(redisClient, m, cfg.RateLimit.QuickBookPerMinute, time.Minute))
	}

	// 公开路由：登录、注册、快速预订；已登录员工的注册同样记录操作日志
	public := r.Group("", middleware.OptionalSession(authCfg), opLogger.Log())
	{
		authH.RegisterRoutes(public, limiters...)
		reservationH.RegisterPublicRoutes(public, quickLimiters...)
	}

	// 需要登录的路由，写操作成功后记录操作日志
	protected := r.Group("", middleware.Auth(authCfg), middleware.NoCache(), opLogger.Log())
	{
		authH.RegisterProtectedRoutes(protected)
		reportH.RegisterRoutes(protected)
		customerH.RegisterRoutes(protected)
		roomH.RegisterRoutes(protected)
		reservationH.RegisterRoutes(protected)
		paymentH.RegisterRoutes(protected)
	}

	app := &application{log: log, notifier: confirmer, mqtt: mqttClient}
	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.NewScheduler()
		if err := scheduler.SetupTasks(app.scheduler, scheduler.NewTaskHandler(repairSvc), cfg.Scheduler.SweepSpec); err != nil {
			return nil, err
		}
	}
	return app, nil
}
