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
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"

	"keepsake/internal/config"
	"keepsake/internal/model/project"
)

// ArkClient 火山引擎 Ark 视频生成客户端（image-to-video）
// 任务接口走 contents/generations/tasks，SDK 客户端仅用于鉴权配置
type ArkClient struct {
	client       *arkruntime.Client
	apiKey       string
	baseURL      string
	model        string
	pollInterval time.Duration
	maxWait      time.Duration
	httpClient   *http.Client
}

// NewArkClient 创建 Ark 客户端
func NewArkClient(cfg *config.VideoGenConfig) (*ArkClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark api key is required")
	}

	var opts []arkruntime.ConfigOption
	if cfg.BaseURL != "" {
		opts = append(opts, arkruntime.WithBaseUrl(cfg.BaseURL))
	}

	return &ArkClient{
		client:       arkruntime.NewClientWithApiKey(cfg.APIKey, opts...),
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		model:        cfg.Model,
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		httpClient:   &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

// SynthesizeScene 合成单个场景视频
// 提交任务后在函数内部轮询任务状态，直到完成、失败或超时
func (c *ArkClient) SynthesizeScene(ctx context.Context, scene *project.SceneScript, seedImage []byte) (*SceneResult, error) {
	duration := int(scene.EndTime - scene.StartTime)
	// Ark 单任务最长 12 秒
	if duration > 12 {
		log.Warn().Int("scene_id", scene.SceneID).Int("duration", duration).Msg("场景时长超过限制，已调整为 12 秒")
		duration = 12
	}
	if duration <= 0 {
		duration = 6
	}

	// 没有种子图时走纯文本模式，不携带 image_url
	imageDataURL := ""
	if len(seedImage) > 0 {
		imageDataURL = ConvertImageToDataURL(seedImage, "image/jpeg")
	}

	taskID, err := c.createTask(ctx, scene.VideoPrompt, imageDataURL, duration)
	if err != nil {
		return nil, fmt.Errorf("create video task: %w", err)
	}
	log.Info().Int("scene_id", scene.SceneID).Str("task_id", taskID).Msg("场景视频生成任务提交成功")

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
			return nil, fmt.Errorf("%w: scene %d after %v", ErrTimeout, scene.SceneID, c.maxWait)
		}

		status, videoURL, reason, err := c.getTaskStatus(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("get task status: %w", err)
		}

		switch status {
		case "succeeded", "completed":
			if videoURL == "" {
				return nil, fmt.Errorf("scene %d task succeeded without video url", scene.SceneID)
			}
			log.Info().Int("scene_id", scene.SceneID).Str("task_id", taskID).Msg("场景视频生成完成")
			return &SceneResult{SceneID: scene.SceneID, VideoURL: videoURL}, nil
		case "failed":
			if reason == "" {
				reason = "unknown"
			}
			return nil, fmt.Errorf("scene %d video generation task failed: %s (task_id=%s)", scene.SceneID, reason, taskID)
		}

		log.Debug().Str("task_id", taskID).Str("status", status).Msg("视频生成中，继续等待...")
	}
}

func (c *ArkClient) createTask(ctx context.Context, prompt, imageDataURL string, duration int) (string, error) {
	content := []map[string]interface{}{
		{"type": "text", "text": prompt},
	}
	if imageDataURL != "" {
		content = append(content, map[string]interface{}{
			"type":      "image_url",
			"image_url": map[string]interface{}{"url": imageDataURL},
		})
	}

	requestBody := map[string]interface{}{
		"model":     c.model,
		"content":   content,
		"ratio":     "9:16",
		"duration":  duration,
		"watermark": false,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	apiURL := fmt.Sprintf("%s/contents/generations/tasks", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status_code", resp.StatusCode).Str("response_body", string(body)).Msg("Ark API 请求失败")
		return "", fmt.Errorf("ark API failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.ID == "" {
		return "", fmt.Errorf("task ID is empty in response")
	}
	return apiResp.ID, nil
}

func (c *ArkClient) getTaskStatus(ctx context.Context, taskID string) (status string, videoURL string, reason string, err error) {
	apiURL := fmt.Sprintf("%s/contents/generations/tasks/%s", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", "", "", fmt.Errorf("ark API failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Status  string `json:"status"`
		Content struct {
			VideoURL string `json:"video_url"`
		} `json:"content"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", "", "", fmt.Errorf("decode response: %w", err)
	}
	return apiResp.Status, apiResp.Content.VideoURL, apiResp.Error.Message, nil
}
