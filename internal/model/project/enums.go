package project

// Status 项目状态
// 状态机：draft → analyzing → draft（分析完成回到草稿）→ generating → completed | failed
type Status string

const (
	StatusDraft      Status = "draft"      // 草稿（可上传照片、填写叙事）
	StatusAnalyzing  Status = "analyzing"  // 照片分析中
	StatusGenerating Status = "generating" // 视频生成中
	StatusCompleted  Status = "completed"  // 已完成（终态）
	StatusFailed     Status = "failed"     // 失败（可重试分析/生成）
)

// String 返回状态的字符串表示
func (s Status) String() string {
	return string(s)
}

// InFlight 是否有分析或生成正在进行
func (s Status) InFlight() bool {
	return s == StatusAnalyzing || s == StatusGenerating
}

// Style 视频风格偏好
type Style string

const (
	StyleRomantic  Style = "romantic"
	StyleNostalgic Style = "nostalgic"
	StyleHappy     Style = "happy"
	StyleEmotional Style = "emotional"
	StyleCinematic Style = "cinematic"
)

// String 返回风格的字符串表示
func (s Style) String() string {
	return string(s)
}

// IsValid 校验风格是否在枚举范围内
func (s Style) IsValid() bool {
	switch s {
	case StyleRomantic, StyleNostalgic, StyleHappy, StyleEmotional, StyleCinematic:
		return true
	}
	return false
}
