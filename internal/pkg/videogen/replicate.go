package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"keepsake/internal/config"
	"keepsake/internal/model/project"
)

// ReplicateClient Replicate 视频生成客户端
// 调用 minimax/video-01（Hailuo）模型做 image-to-video
// 提交时携带 Prefer: wait 尝试同步拿结果，未就绪则轮询 predictions/{id}
type ReplicateClient struct {
	apiKey       string
	baseURL      string
	model        string
	pollInterval time.Duration
	maxWait      time.Duration
	httpClient   *http.Client
}

// NewReplicateClient 创建 Replicate 客户端
func NewReplicateClient(cfg *config.VideoGenConfig) *ReplicateClient {
	return &ReplicateClient{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		model:        cfg.Model,
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		httpClient:   &http.Client{Timeout: 5 * time.Minute},
	}
}

type predictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// outputURL Replicate 的 output 字段可能是字符串或字符串数组
func (p *predictionResponse) outputURL() string {
	if len(p.Output) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

// SynthesizeScene 合成单个场景视频
func (c *ReplicateClient) SynthesizeScene(ctx context.Context, scene *project.SceneScript, seedImage []byte) (*SceneResult, error) {
	input := map[string]interface{}{
		"prompt":           scene.VideoPrompt,
		"prompt_optimizer": true,
	}
	if len(seedImage) > 0 {
		input["first_frame_image"] = ConvertImageToDataURL(seedImage, "image/jpeg")
	}

	body, err := json.Marshal(map[string]interface{}{"input": input})
	if err != nil {
		return nil, fmt.Errorf("marshal prediction request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "wait")

	log.Info().Int("scene_id", scene.SceneID).Str("model", c.model).Msg("提交场景视频生成任务")

	pred, err := c.doPrediction(req)
	if err != nil {
		return nil, err
	}

	// Prefer: wait 命中时直接拿到结果
	if url := pred.outputURL(); url != "" && pred.Status == "succeeded" {
		log.Info().Int("scene_id", scene.SceneID).Str("prediction_id", pred.ID).Msg("场景视频生成完成（同步）")
		return &SceneResult{SceneID: scene.SceneID, VideoURL: url}, nil
	}
	if pred.Status == "failed" || pred.Status == "canceled" {
		return nil, fmt.Errorf("scene %d video generation failed: %s", scene.SceneID, pred.Error)
	}

	return c.waitForCompletion(ctx, scene.SceneID, pred.ID)
}

// waitForCompletion 轮询直到任务完成、失败或超时
func (c *ReplicateClient) waitForCompletion(ctx context.Context, sceneID int, predictionID string) (*SceneResult, error) {
	deadline := time.Now().Add(c.maxWait)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: scene %d after %v", ErrTimeout, sceneID, c.maxWait)
		}

		pred, err := c.getPrediction(ctx, predictionID)
		if err != nil {
			return nil, err
		}

		switch pred.Status {
		case "succeeded":
			url := pred.outputURL()
			if url == "" {
				return nil, fmt.Errorf("scene %d prediction succeeded without output", sceneID)
			}
			log.Info().Int("scene_id", sceneID).Str("prediction_id", predictionID).Msg("场景视频生成完成")
			return &SceneResult{SceneID: sceneID, VideoURL: url}, nil
		case "failed", "canceled":
			return nil, fmt.Errorf("scene %d video generation failed: %s", sceneID, pred.Error)
		}

		log.Debug().Int("scene_id", sceneID).Str("status", pred.Status).Msg("视频生成中，继续等待...")
	}
}

func (c *ReplicateClient) getPrediction(ctx context.Context, predictionID string) (*predictionResponse, error) {
	apiURL := fmt.Sprintf("%s/predictions/%s", c.baseURL, predictionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.doPrediction(req)
}

func (c *ReplicateClient) doPrediction(req *http.Request) (*predictionResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status_code", resp.StatusCode).Str("response_body", string(body)).Msg("Replicate API 请求失败")
		return nil, fmt.Errorf("replicate API failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pred predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &pred, nil
}
