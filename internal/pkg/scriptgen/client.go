package scriptgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"keepsake/internal/model/project"
	"keepsake/internal/pkg/llm"
)

// ErrInvalidScript LLM 返回的脚本无法解析或结构不完整
var ErrInvalidScript = errors.New("generated script is not a valid video script")

// Generator 视频脚本生成器
// 把照片分析结果和用户叙事交给 LLM，产出结构化分镜脚本
type Generator struct {
	provider llm.Provider
}

// NewGenerator 创建脚本生成器
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// scriptInput 提示词中的分析输入
type scriptInput struct {
	Analyses []*project.PhotoAnalysis `json:"photo_analyses"`
	Summary  *project.AnalysisSummary `json:"summary,omitempty"`
}

// GenerateScript 生成分镜脚本
func (g *Generator) GenerateScript(ctx context.Context, analyses []*project.PhotoAnalysis, summary *project.AnalysisSummary, narrative string, style project.Style) (*project.VideoScript, error) {
	input, err := json.Marshal(scriptInput{Analyses: analyses, Summary: summary})
	if err != nil {
		return nil, fmt.Errorf("marshal analyses: %w", err)
	}

	prompt := fmt.Sprintf(scriptPromptTemplate, string(input), narrative, style)

	content, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	script, err := ParseScript(content)
	if err != nil {
		log.Warn().Err(err).Str("content", head(content, 200)).Msg("脚本解析失败")
		return nil, err
	}

	log.Info().Str("title", script.Title).Int("scenes", len(script.Scenes)).Msg("脚本生成完成")
	return script, nil
}

// ParseScript 解析 LLM 返回的脚本 JSON
// 解析失败或缺少场景时返回 ErrInvalidScript，调用方据此让整次生成失败
func ParseScript(content string) (*project.VideoScript, error) {
	cleaned := CleanJSONContent(content)

	var script project.VideoScript
	if err := json.Unmarshal([]byte(cleaned), &script); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(script.Scenes) == 0 {
		return nil, fmt.Errorf("%w: no scenes", ErrInvalidScript)
	}
	for _, scene := range script.Scenes {
		if scene.PhotoID == "" {
			return nil, fmt.Errorf("%w: scene %d has no photo_id", ErrInvalidScript, scene.SceneID)
		}
		if scene.VideoPrompt == "" {
			return nil, fmt.Errorf("%w: scene %d has no video_prompt", ErrInvalidScript, scene.SceneID)
		}
	}

	return &script, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
