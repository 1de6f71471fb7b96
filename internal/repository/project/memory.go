package project

import (
	"context"
	"sync"
	"time"

	"keepsake/internal/model/project"
)

// MemoryRepo 进程内项目仓库实现
// Mongo 未配置时使用（开发模式，重启即丢失）；也是单元测试的仓库替身
// 所有读操作返回快照副本，状态查询不会观察到生成过程中的中间写入
type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]*project.Project
}

// NewMemoryRepo 创建进程内项目仓库
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{projects: make(map[string]*project.Project)}
}

// Create 创建项目
func (r *MemoryRepo) Create(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = project.StatusDraft
	}
	r.projects[p.ID] = clone(p)
	return nil
}

// FindByID 根据ID查询项目（返回副本）
func (r *MemoryRepo) FindByID(ctx context.Context, id string) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

// AppendPhotos 追加照片引用，同时清空旧的分析结果
func (r *MemoryRepo) AppendPhotos(ctx context.Context, id string, photos []project.Photo) error {
	return r.update(id, func(p *project.Project) {
		p.Photos = append(p.Photos, photos...)
		p.PhotoAnalyses = nil
		p.AnalysisSummary = nil
	})
}

// SetNarrative 设置叙事与风格
func (r *MemoryRepo) SetNarrative(ctx context.Context, id string, narrative string, style project.Style) error {
	return r.update(id, func(p *project.Project) {
		p.Narrative = narrative
		p.Style = style
	})
}

// SetStatus 更新状态
func (r *MemoryRepo) SetStatus(ctx context.Context, id string, status project.Status) error {
	return r.update(id, func(p *project.Project) {
		p.Status = status
		p.Error = ""
	})
}

// SaveAnalysis 保存分析结果并回到 draft
func (r *MemoryRepo) SaveAnalysis(ctx context.Context, id string, analyses []*project.PhotoAnalysis, summary *project.AnalysisSummary) error {
	return r.update(id, func(p *project.Project) {
		p.PhotoAnalyses = analyses
		p.AnalysisSummary = summary
		p.Status = project.StatusDraft
		p.Error = ""
	})
}

// MarkCompleted 落库生成产物并进入终态
func (r *MemoryRepo) MarkCompleted(ctx context.Context, id string, script *project.VideoScript, videoURL string, completedAt time.Time) error {
	return r.update(id, func(p *project.Project) {
		p.Script = script
		p.VideoURL = videoURL
		p.Status = project.StatusCompleted
		p.CompletedAt = &completedAt
		p.Error = ""
	})
}

// MarkFailed 记录失败原因
func (r *MemoryRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.update(id, func(p *project.Project) {
		p.Status = project.StatusFailed
		p.Error = reason
	})
}

// Delete 删除项目
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryRepo) update(id string, fn func(p *project.Project)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return ErrNotFound
	}
	fn(p)
	p.UpdatedAt = time.Now()
	return nil
}

// clone 深拷贝项目快照
func clone(p *project.Project) *project.Project {
	cp := *p

	cp.Photos = append([]project.Photo(nil), p.Photos...)

	if p.PhotoAnalyses != nil {
		cp.PhotoAnalyses = make([]*project.PhotoAnalysis, len(p.PhotoAnalyses))
		for i, a := range p.PhotoAnalyses {
			ac := *a
			ac.Colors = append([]string(nil), a.Colors...)
			ac.KeyElements = append([]string(nil), a.KeyElements...)
			ac.People.Emotions = append([]string(nil), a.People.Emotions...)
			cp.PhotoAnalyses[i] = &ac
		}
	}
	if p.AnalysisSummary != nil {
		sc := *p.AnalysisSummary
		sc.EmotionalJourney = append([]string(nil), p.AnalysisSummary.EmotionalJourney...)
		cp.AnalysisSummary = &sc
	}
	if p.Script != nil {
		scc := *p.Script
		scc.Scenes = append([]project.SceneScript(nil), p.Script.Scenes...)
		cp.Script = &scc
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
