package project

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"keepsake/internal/model/project"
	"keepsake/internal/pkg/id"
	"keepsake/internal/pkg/storage"
)

// Create 创建项目，初始状态 draft
func (s *Service) Create(ctx context.Context, title string) (*project.Project, error) {
	now := time.Now()
	p := &project.Project{
		ID:        id.New(),
		Title:     title,
		Status:    project.StatusDraft,
		Photos:    []project.Photo{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	log.Info().Str("project_id", p.ID).Msg("项目创建成功")
	return p, nil
}

// Get 查询项目快照
func (s *Service) Get(ctx context.Context, projectID string) (*project.Project, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// PhotoUpload 一次上传中的单个文件
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadPhotos 批量上传照片
// 分析或生成进行中时拒绝；新照片会清空已有的分析结果
func (s *Service) UploadPhotos(ctx context.Context, projectID string, uploads []PhotoUpload) ([]project.Photo, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if p.Status == project.StatusCompleted {
		return nil, ErrProjectCompleted
	}
	if p.Status.InFlight() {
		return nil, ErrProjectBusy
	}
	if len(uploads) == 0 {
		return nil, ErrNoPhotos
	}
	if len(p.Photos)+len(uploads) > s.pipeline.MaxPhotos {
		return nil, fmt.Errorf("%w: at most %d photos per project", ErrTooManyPhotos, s.pipeline.MaxPhotos)
	}
	for _, u := range uploads {
		if !strings.HasPrefix(u.ContentType, "image/") {
			return nil, fmt.Errorf("%w: %s (%s)", ErrInvalidFileType, u.Filename, u.ContentType)
		}
	}

	photos := make([]project.Photo, 0, len(uploads))
	for _, u := range uploads {
		photoID := id.New()
		key := storage.PhotoKey(projectID, photoID, photoExt(u.Filename))

		if _, err := s.storage.Upload(ctx, key, u.Data, u.ContentType); err != nil {
			return nil, fmt.Errorf("upload photo %s: %w", u.Filename, err)
		}

		photos = append(photos, project.Photo{
			ID:          photoID,
			Filename:    u.Filename,
			Key:         key,
			ContentType: u.ContentType,
			Size:        u.Size,
			UploadedAt:  time.Now(),
		})
	}

	if err := s.repo.AppendPhotos(ctx, projectID, photos); err != nil {
		return nil, mapNotFound(err)
	}

	log.Info().Str("project_id", projectID).Int("count", len(photos)).Msg("照片上传完成")
	return photos, nil
}

// SetNarrative 设置叙事与风格
func (s *Service) SetNarrative(ctx context.Context, projectID, narrative string, style project.Style) error {
	if !style.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStyle, style)
	}

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return mapNotFound(err)
	}
	if p.Status == project.StatusCompleted {
		return ErrProjectCompleted
	}
	if p.Status.InFlight() {
		return ErrProjectBusy
	}

	if err := s.repo.SetNarrative(ctx, projectID, narrative, style); err != nil {
		return mapNotFound(err)
	}
	return nil
}

// Delete 删除项目及其全部存储文件
// 幂等性由调用方感知：第二次删除返回未找到
func (s *Service) Delete(ctx context.Context, projectID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return mapNotFound(err)
	}

	if err := s.storage.DeletePrefix(ctx, storage.ProjectPrefix(projectID)); err != nil {
		// 存储清理失败不阻塞项目删除，记录后继续
		log.Warn().Err(err).Str("project_id", projectID).Msg("清理项目文件失败")
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		return mapNotFound(err)
	}

	log.Info().Str("project_id", projectID).Msg("项目已删除")
	return nil
}

// photoExt 从文件名取扩展名，缺省按 jpg 处理
func photoExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return ext
}
