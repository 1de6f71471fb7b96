package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "keepsake/docs"
	"keepsake/internal/config"
	"keepsake/internal/handler"
	projectHandler "keepsake/internal/handler/project"
	"keepsake/internal/pkg/cache"
	"keepsake/internal/pkg/llm"
	"keepsake/internal/pkg/mongodb"
	"keepsake/internal/pkg/scriptgen"
	"keepsake/internal/pkg/storagefactory"
	"keepsake/internal/pkg/videogen"
	"keepsake/internal/pkg/vision"
	projectRepo "keepsake/internal/repository/project"
	"keepsake/internal/server/middleware"
	projectService "keepsake/internal/service/project"
)

// Server HTTP 服务器
type Server struct {
	cfg        *config.Config
	engine     *gin.Engine
	mongo      *mongodb.Client
	redis      *cache.RedisCache
	projectSvc *projectService.Service
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB (可选，未配置时项目数据保存在进程内存)
	var mongoClient *mongodb.Client
	var repo projectRepo.ProjectRepository
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			return nil, err
		}
		mongoClient = client
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

		// 创建索引
		if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
			log.Warn().Err(err).Msg("failed to ensure indexes")
		}

		repo = projectRepo.NewMongoRepo(mongoClient.Database())
	} else {
		log.Warn().Msg("MongoDB not configured, project data is volatile (in-memory)")
		repo = projectRepo.NewMemoryRepo()
	}

	// 初始化 Redis (可选，未配置时生成锁退化为进程内锁)
	var redisCache *cache.RedisCache
	var locker projectService.Locker
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisCache = rc
		locker = projectService.NewRedisLocker(rc, cfg.Pipeline.Timeout)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	} else {
		locker = projectService.NewMemoryLocker()
	}

	// 初始化存储
	ctx := context.Background()
	store, err := storagefactory.NewStorage(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Info().Str("type", store.GetStorageType()).Msg("storage initialized")

	// 初始化图片分析客户端
	visionClient, err := vision.NewClient(&cfg.Vision)
	if err != nil {
		return nil, err
	}

	// 初始化脚本生成 LLM
	chatModel, err := llm.NewChatModel(ctx, &cfg.Script)
	if err != nil {
		return nil, err
	}
	provider := llm.NewEinoProvider(chatModel)
	log.Info().Str("provider", cfg.Script.Provider).Str("model", cfg.Script.Model).Msg("chat model initialized")

	// 初始化视频合成客户端
	synth, err := videogen.NewSynthesizer(&cfg.VideoGen)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", cfg.VideoGen.Provider).Str("model", cfg.VideoGen.Model).Msg("video synthesizer initialized")

	projectSvc := projectService.NewService(
		repo,
		store,
		visionClient,
		vision.NewSummarizer(provider),
		scriptgen.NewGenerator(provider),
		synth,
		locker,
		cfg,
	)

	srv := &Server{
		cfg:        cfg,
		engine:     engine,
		mongo:      mongoClient,
		redis:      redisCache,
		projectSvc: projectSvc,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		projectHdl := projectHandler.NewHandler(s.projectSvc)

		projects := v1.Group("/projects")
		{
			projects.POST("", projectHdl.CreateProject)
			projects.GET("/:project_id", projectHdl.GetProject)
			projects.DELETE("/:project_id", projectHdl.DeleteProject)
			projects.POST("/:project_id/photos", projectHdl.UploadPhotos)
			projects.PUT("/:project_id/narrative", projectHdl.SetNarrative)
			projects.POST("/:project_id/analyze", projectHdl.AnalyzePhotos)
			projects.POST("/:project_id/generate", projectHdl.StartGeneration)
			projects.GET("/:project_id/status", projectHdl.GetStatus)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
