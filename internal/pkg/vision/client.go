package vision

import (
	"bytes"
	"context"
	"encoding/base64"
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

// Client Google Cloud Vision 客户端（图片分析）
// 调用 images:annotate 提取标签、人脸、主色调、地标与物体
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建 Vision 客户端
func NewClient(cfg *config.VisionConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision API key is required")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com/v1"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// annotateResponse Vision API 响应（只取用到的字段）
type annotateResponse struct {
	Responses []visionResponse `json:"responses"`
}

type visionResponse struct {
	LabelAnnotations []struct {
		Description string `json:"description"`
	} `json:"labelAnnotations"`
	FaceAnnotations []struct {
		JoyLikelihood      string `json:"joyLikelihood"`
		SorrowLikelihood   string `json:"sorrowLikelihood"`
		SurpriseLikelihood string `json:"surpriseLikelihood"`
	} `json:"faceAnnotations"`
	ImagePropertiesAnnotation struct {
		DominantColors struct {
			Colors []struct {
				Color struct {
					Red   float64 `json:"red"`
					Green float64 `json:"green"`
					Blue  float64 `json:"blue"`
				} `json:"color"`
			} `json:"colors"`
		} `json:"dominantColors"`
	} `json:"imagePropertiesAnnotation"`
	LandmarkAnnotations []struct {
		Description string `json:"description"`
	} `json:"landmarkAnnotations"`
	LocalizedObjectAnnotations []struct {
		Name string `json:"name"`
	} `json:"localizedObjectAnnotations"`
}

// Analyze 分析单张照片
func (c *Client) Analyze(ctx context.Context, photoID string, image []byte) (*project.PhotoAnalysis, error) {
	requestBody := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"image": map[string]string{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]interface{}{
					{"type": "LABEL_DETECTION", "maxResults": 10},
					{"type": "FACE_DETECTION", "maxResults": 10},
					{"type": "IMAGE_PROPERTIES"},
					{"type": "LANDMARK_DETECTION", "maxResults": 5},
					{"type": "OBJECT_LOCALIZATION", "maxResults": 10},
				},
			},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	apiURL := fmt.Sprintf("%s/images:annotate?key=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("photo_id", photoID).
			Str("response_body", string(body)).
			Msg("Vision API 请求失败")
		return nil, fmt.Errorf("vision API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var vr visionResponse
	if len(apiResp.Responses) > 0 {
		vr = apiResp.Responses[0]
	}

	analysis := parseVisionResponse(&vr)
	analysis.PhotoID = photoID

	log.Debug().
		Str("photo_id", photoID).
		Int("labels", len(vr.LabelAnnotations)).
		Int("faces", len(vr.FaceAnnotations)).
		Msg("照片分析完成")

	return analysis, nil
}
