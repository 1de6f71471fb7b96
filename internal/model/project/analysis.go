package project

// PhotoAnalysis 单张照片的结构化分析结果
type PhotoAnalysis struct {
	PhotoID     string   `bson:"photo_id" json:"photo_id"`
	People      People   `bson:"people" json:"people"`
	Setting     Setting  `bson:"setting" json:"setting"`
	Mood        string   `bson:"mood" json:"mood"`
	Colors      []string `bson:"colors" json:"colors"`             // 主色调，rgb(...) 形式
	KeyElements []string `bson:"key_elements" json:"key_elements"` // 标签与识别物体
}

// People 照片中的人物信息
type People struct {
	Count        int      `bson:"count" json:"count"`
	Relationship string   `bson:"relationship" json:"relationship"`
	Emotions     []string `bson:"emotions" json:"emotions"`
}

// Setting 照片的场景信息
type Setting struct {
	Type   string `bson:"type" json:"type"`     // 地标/主要物体
	Indoor bool   `bson:"indoor" json:"indoor"` // 室内/室外
	Time   string `bson:"time" json:"time"`
	Season string `bson:"season" json:"season"`
}

// AnalysisSummary 跨照片的整体主题摘要
type AnalysisSummary struct {
	OverallTheme          string   `bson:"overall_theme" json:"overall_theme"`
	SuggestedNarrativeArc string   `bson:"suggested_narrative_arc" json:"suggested_narrative_arc"`
	EmotionalJourney      []string `bson:"emotional_journey" json:"emotional_journey"`
}
