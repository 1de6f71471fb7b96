package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"keepsake/internal/model/project"
	"keepsake/internal/pkg/cache"
	"keepsake/internal/pkg/storage"
)

// StartGeneration 调度一次视频生成
// 守卫检查同步完成，流水线本体在独立 goroutine 中执行，
// 不受请求上下文取消影响，只受流水线总超时约束
func (s *Service) StartGeneration(ctx context.Context, projectID string) error {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return mapNotFound(err)
	}
	if err := checkGenerationReady(p); err != nil {
		return err
	}

	lockKey := cache.GenerationLockKey(projectID)
	acquired, err := s.locker.TryLock(ctx, lockKey)
	if err != nil {
		return fmt.Errorf("acquire generation lock: %w", err)
	}
	if !acquired {
		return ErrProjectBusy
	}

	// 拿锁后重读快照并复查守卫，锁获取前落库的并发写
	// （如追加照片清空了分析结果）不会带进流水线
	p, err = s.repo.FindByID(ctx, projectID)
	if err != nil {
		s.locker.Unlock(ctx, lockKey)
		return mapNotFound(err)
	}
	if err := checkGenerationReady(p); err != nil {
		s.locker.Unlock(ctx, lockKey)
		return err
	}

	if err := s.repo.SetStatus(ctx, projectID, project.StatusGenerating); err != nil {
		s.locker.Unlock(ctx, lockKey)
		return mapNotFound(err)
	}

	log.Info().Str("project_id", projectID).Msg("生成流水线已调度")

	go s.runGeneration(p, lockKey)
	return nil
}

// checkGenerationReady 生成前置守卫，按固定顺序检查
func checkGenerationReady(p *project.Project) error {
	if p.Status == project.StatusCompleted {
		return ErrProjectCompleted
	}
	if p.Status.InFlight() {
		return ErrProjectBusy
	}
	if len(p.Photos) == 0 {
		return ErrNoPhotos
	}
	if p.Narrative == "" {
		return ErrNarrativeNotSet
	}
	if len(p.PhotoAnalyses) == 0 || len(p.PhotoAnalyses) != len(p.Photos) {
		return ErrNotAnalyzed
	}
	return nil
}

// runGeneration 生成流水线的执行单元
// 全有或全无：任一阶段失败都落到 failed，不保留部分产物
func (s *Service) runGeneration(p *project.Project, lockKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.pipeline.Timeout)
	defer cancel()
	defer s.locker.Unlock(context.Background(), lockKey)

	start := time.Now()

	script, videoURL, err := s.generate(ctx, p)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("generation timed out after %v", s.pipeline.Timeout)
		}
		log.Error().Err(err).Str("project_id", p.ID).Msg("生成流水线失败")
		if markErr := s.repo.MarkFailed(context.Background(), p.ID, reason); markErr != nil {
			log.Error().Err(markErr).Str("project_id", p.ID).Msg("记录生成失败状态出错")
		}
		return
	}

	if err := s.repo.MarkCompleted(context.Background(), p.ID, script, videoURL, time.Now()); err != nil {
		log.Error().Err(err).Str("project_id", p.ID).Msg("落库生成结果出错")
		return
	}

	log.Info().
		Str("project_id", p.ID).
		Int("scenes", len(script.Scenes)).
		Dur("elapsed", time.Since(start)).
		Msg("生成流水线完成")
}

// generate 脚本生成 → 逐场景合成 → 定稿
func (s *Service) generate(ctx context.Context, p *project.Project) (*project.VideoScript, string, error) {
	script, err := s.scripter.GenerateScript(ctx, p.PhotoAnalyses, p.AnalysisSummary, p.Narrative, p.Style)
	if err != nil {
		return nil, "", fmt.Errorf("script generation: %w", err)
	}
	if len(script.Scenes) == 0 {
		return nil, "", fmt.Errorf("script generation: script has no scenes")
	}

	// 预加载全部照片，场景按 photo_id 取种子图
	images := make(map[string][]byte, len(p.Photos))
	for _, photo := range p.Photos {
		data, err := s.loadPhoto(ctx, photo.Key)
		if err != nil {
			return nil, "", fmt.Errorf("load photo %s: %w", photo.ID, err)
		}
		images[photo.ID] = data
	}

	results := make([]string, 0, len(script.Scenes))
	for i := range script.Scenes {
		scene := &script.Scenes[i]
		result, err := s.synth.SynthesizeScene(ctx, scene, images[scene.PhotoID])
		if err != nil {
			return nil, "", fmt.Errorf("scene %d synthesis: %w", scene.SceneID, err)
		}
		results = append(results, result.VideoURL)
	}

	// 首个场景的视频作为项目的代表视频
	videoURL := results[0]
	if s.mirror {
		mirrored, err := s.mirrorVideo(ctx, p.ID, videoURL)
		if err != nil {
			return nil, "", fmt.Errorf("mirror video: %w", err)
		}
		videoURL = mirrored
	}

	return script, videoURL, nil
}

// mirrorVideo 把上游的临时视频 URL 转存到自有存储
func (s *Service) mirrorVideo(ctx context.Context, projectID, videoURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download video: status %d, body: %s", resp.StatusCode, string(body))
	}

	key := storage.VideoKey(projectID, "final")
	url, err := s.storage.Upload(ctx, key, resp.Body, "video/mp4")
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}

	log.Info().Str("project_id", projectID).Str("key", key).Msg("代表视频已转存")
	return url, nil
}
