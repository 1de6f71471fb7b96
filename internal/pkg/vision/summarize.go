package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keepsake/internal/model/project"
	"keepsake/internal/pkg/llm"
	"keepsake/internal/pkg/scriptgen"
)

// ErrBadSummary LLM 摘要无法按预期结构解析
// 解析失败是一等错误，绝不静默回退到猜测的默认值
var ErrBadSummary = errors.New("analysis summary is not valid JSON")

const summaryPromptTemplate = `Combine the following per-photo analysis results into an overall story theme.

Analysis results: %s

## Output format (respond with ONLY this JSON, no other text)
{
  "overall_theme": "the overall theme",
  "suggested_narrative_arc": "beginning -> development -> ending",
  "emotional_journey": ["emotion1", "emotion2", "emotion3"]
}`

// Summarizer 跨照片主题摘要
// 分析适配器的第二步：把逐张分析交给 LLM 提炼整体主题
type Summarizer struct {
	provider llm.Provider
}

// NewSummarizer 创建摘要器
func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Summarize 提炼整体主题
func (s *Summarizer) Summarize(ctx context.Context, analyses []*project.PhotoAnalysis) (*project.AnalysisSummary, error) {
	data, err := json.Marshal(analyses)
	if err != nil {
		return nil, fmt.Errorf("marshal analyses: %w", err)
	}

	content, err := s.provider.Generate(ctx, fmt.Sprintf(summaryPromptTemplate, string(data)))
	if err != nil {
		return nil, fmt.Errorf("summarize analyses: %w", err)
	}

	cleaned := scriptgen.CleanJSONContent(content)

	var summary project.AnalysisSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSummary, err)
	}
	if summary.OverallTheme == "" {
		return nil, fmt.Errorf("%w: missing overall_theme", ErrBadSummary)
	}

	return &summary, nil
}
