package project

// VideoScript 脚本生成能力产出的结构化分镜脚本
type VideoScript struct {
	Title         string        `bson:"title" json:"title"`
	TotalDuration int           `bson:"total_duration" json:"total_duration"` // 秒
	Scenes        []SceneScript `bson:"scenes" json:"scenes"`                 // 有序场景列表
	OverallMood   string        `bson:"overall_mood" json:"overall_mood"`
	ColorGrading  string        `bson:"color_grading" json:"color_grading"`
}

// SceneScript 单个场景
// PhotoID 指向项目照片时使用图生视频，否则退化为纯文本生成
type SceneScript struct {
	SceneID        int     `bson:"scene_id" json:"scene_id"`
	StartTime      float64 `bson:"start_time" json:"start_time"`
	EndTime        float64 `bson:"end_time" json:"end_time"`
	PhotoID        string  `bson:"photo_id,omitempty" json:"photo_id,omitempty"`
	Transition     string  `bson:"transition" json:"transition"`
	CameraMovement string  `bson:"camera_movement" json:"camera_movement"`
	Emotion        string  `bson:"emotion" json:"emotion"`
	VideoPrompt    string  `bson:"video_prompt" json:"video_prompt"` // 英文生成提示词
}
