package project

import (
	"context"
	"errors"
	"time"

	"keepsake/internal/model/project"
)

// ErrNotFound 项目不存在
var ErrNotFound = errors.New("project not found")

// ProjectRepository 项目仓库接口
// 进程内实现（开发/测试）与 MongoDB 实现（部署）共用同一接口
type ProjectRepository interface {
	Create(ctx context.Context, p *project.Project) error
	FindByID(ctx context.Context, id string) (*project.Project, error)

	// AppendPhotos 追加照片引用
	// 同时清空已有的分析结果：新照片会使旧分析与照片数不一致，必须重新分析
	AppendPhotos(ctx context.Context, id string, photos []project.Photo) error

	// SetNarrative 设置叙事与风格
	SetNarrative(ctx context.Context, id string, narrative string, style project.Style) error

	// SetStatus 更新状态；从 failed 重新进入流水线时同时清除错误信息
	SetStatus(ctx context.Context, id string, status project.Status) error

	// SaveAnalysis 保存分析结果并把状态置回 draft（分析是旁路操作，不是生成流水线）
	SaveAnalysis(ctx context.Context, id string, analyses []*project.PhotoAnalysis, summary *project.AnalysisSummary) error

	// MarkCompleted 一次性落库生成产物并进入终态
	MarkCompleted(ctx context.Context, id string, script *project.VideoScript, videoURL string, completedAt time.Time) error

	// MarkFailed 记录失败原因并进入 failed
	MarkFailed(ctx context.Context, id string, reason string) error

	Delete(ctx context.Context, id string) error
}
