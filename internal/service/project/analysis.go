package project

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"keepsake/internal/model/project"
)

// RunAnalysis 对项目的全部照片跑一轮分析
// 同步执行：analyzing 期间其他写操作被拒绝，成功后回到 draft，
// 上游失败则进入 failed（failed 可以重新发起分析）
func (s *Service) RunAnalysis(ctx context.Context, projectID string) (*project.Project, error) {
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
	if len(p.Photos) == 0 {
		return nil, ErrNoPhotos
	}

	if err := s.repo.SetStatus(ctx, projectID, project.StatusAnalyzing); err != nil {
		return nil, mapNotFound(err)
	}

	analyses, summary, err := s.analyzePhotos(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("project_id", projectID).Msg("照片分析失败")
		if markErr := s.repo.MarkFailed(context.WithoutCancel(ctx), projectID, err.Error()); markErr != nil {
			log.Error().Err(markErr).Str("project_id", projectID).Msg("记录分析失败状态出错")
		}
		return nil, err
	}

	if err := s.repo.SaveAnalysis(ctx, projectID, analyses, summary); err != nil {
		return nil, mapNotFound(err)
	}

	log.Info().Str("project_id", projectID).Int("photos", len(analyses)).Msg("照片分析完成")

	out, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return out, nil
}

// analyzePhotos 逐张分析后做整体摘要
// 相邻调用之间由限流器保证最小间隔
func (s *Service) analyzePhotos(ctx context.Context, p *project.Project) ([]*project.PhotoAnalysis, *project.AnalysisSummary, error) {
	analyses := make([]*project.PhotoAnalysis, 0, len(p.Photos))

	for _, photo := range p.Photos {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("analysis pacing: %w", err)
		}

		image, err := s.loadPhoto(ctx, photo.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("load photo %s: %w", photo.ID, err)
		}

		analysis, err := s.analyzer.Analyze(ctx, photo.ID, image)
		if err != nil {
			return nil, nil, fmt.Errorf("analyze photo %s: %w", photo.ID, err)
		}
		analyses = append(analyses, analysis)
	}

	summary, err := s.summarizer.Summarize(ctx, analyses)
	if err != nil {
		return nil, nil, fmt.Errorf("summarize analyses: %w", err)
	}

	return analyses, summary, nil
}

// loadPhoto 从存储读出照片字节
func (s *Service) loadPhoto(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
