package project

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"keepsake/internal/config"
	"keepsake/internal/model/project"
	"keepsake/internal/pkg/cache"
	"keepsake/internal/pkg/storage"
	"keepsake/internal/pkg/videogen"
	repo "keepsake/internal/repository/project"
)

// PhotoAnalyzer 单张照片分析能力
type PhotoAnalyzer interface {
	Analyze(ctx context.Context, photoID string, image []byte) (*project.PhotoAnalysis, error)
}

// AnalysisSummarizer 跨照片主题摘要能力
type AnalysisSummarizer interface {
	Summarize(ctx context.Context, analyses []*project.PhotoAnalysis) (*project.AnalysisSummary, error)
}

// ScriptGenerator 分镜脚本生成能力
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, analyses []*project.PhotoAnalysis, summary *project.AnalysisSummary, narrative string, style project.Style) (*project.VideoScript, error)
}

// SceneSynthesizer 场景视频合成能力
type SceneSynthesizer interface {
	SynthesizeScene(ctx context.Context, scene *project.SceneScript, seedImage []byte) (*videogen.SceneResult, error)
}

// Locker 项目级生成锁
// check-and-set 语义：TryLock 返回 false 表示该项目已有生成任务在跑
type Locker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string)
}

// Service 项目服务
// 项目生命周期管理 + 生成流水线编排
type Service struct {
	repo       repo.ProjectRepository
	storage    storage.Storage
	analyzer   PhotoAnalyzer
	summarizer AnalysisSummarizer
	scripter   ScriptGenerator
	synth      SceneSynthesizer
	locker     Locker

	// limiter 控制相邻两次分析调用的最小间隔
	limiter *rate.Limiter

	pipeline config.PipelineConfig
	mirror   bool
}

// NewService 创建项目服务
func NewService(
	r repo.ProjectRepository,
	st storage.Storage,
	analyzer PhotoAnalyzer,
	summarizer AnalysisSummarizer,
	scripter ScriptGenerator,
	synth SceneSynthesizer,
	locker Locker,
	cfg *config.Config,
) *Service {
	minInterval := cfg.Analysis.MinInterval
	if minInterval <= 0 {
		minInterval = time.Second
	}

	return &Service{
		repo:       r,
		storage:    st,
		analyzer:   analyzer,
		summarizer: summarizer,
		scripter:   scripter,
		synth:      synth,
		locker:     locker,
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		pipeline:   cfg.Pipeline,
		mirror:     cfg.VideoGen.MirrorToStorage,
	}
}

// mapNotFound 仓库层的未找到映射为服务层哨兵
func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

// MemoryLocker 进程内生成锁（单实例部署与测试）
type MemoryLocker struct {
	mu    sync.Mutex
	taken map[string]struct{}
}

// NewMemoryLocker 创建进程内锁
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{taken: map[string]struct{}{}}
}

func (l *MemoryLocker) TryLock(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.taken[key]; ok {
		return false, nil
	}
	l.taken[key] = struct{}{}
	return true, nil
}

func (l *MemoryLocker) Unlock(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.taken, key)
}

// RedisLocker 基于 Redis SetNX 的跨实例生成锁
// TTL 取流水线超时加余量，进程崩溃时锁会自然过期
type RedisLocker struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewRedisLocker 创建 Redis 锁
func NewRedisLocker(c *cache.RedisCache, pipelineTimeout time.Duration) *RedisLocker {
	return &RedisLocker{cache: c, ttl: pipelineTimeout + time.Minute}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (bool, error) {
	return l.cache.TryLock(ctx, key, l.ttl)
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) {
	if err := l.cache.Unlock(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("释放生成锁失败")
	}
}
