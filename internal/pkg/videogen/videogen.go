package videogen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"keepsake/internal/config"
	"keepsake/internal/model/project"
)

// ErrTimeout 视频生成超过最大等待时间
// 与上游明确报告的 failed 区分开，调用方记录不同的失败原因
var ErrTimeout = errors.New("video generation timed out")

// SceneResult 单个场景的合成结果
type SceneResult struct {
	SceneID  int
	VideoURL string
}

// Synthesizer 场景视频合成器
// 以场景脚本和种子图片为输入，阻塞直到上游产出视频或失败
type Synthesizer interface {
	SynthesizeScene(ctx context.Context, scene *project.SceneScript, seedImage []byte) (*SceneResult, error)
}

// NewSynthesizer 根据配置创建合成器
func NewSynthesizer(cfg *config.VideoGenConfig) (Synthesizer, error) {
	switch cfg.Provider {
	case "replicate":
		return NewReplicateClient(cfg), nil
	case "ark":
		return NewArkClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported videogen provider: %s", cfg.Provider)
	}
}

// ConvertImageToDataURL 将图片数据转换为 data URL
func ConvertImageToDataURL(imageData []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
}
