package vision

import (
	"fmt"
	"strings"

	"keepsake/internal/model/project"
)

var (
	indoorKeywords  = []string{"room", "interior", "indoor", "furniture", "ceiling"}
	outdoorKeywords = []string{"sky", "outdoor", "nature", "tree", "building", "street"}
)

// parseVisionResponse 把 Vision API 响应转换为结构化分析
func parseVisionResponse(vr *visionResponse) *project.PhotoAnalysis {
	// 标签
	labels := make([]string, 0, len(vr.LabelAnnotations))
	for _, l := range vr.LabelAnnotations {
		labels = append(labels, l.Description)
	}

	// 人脸与情绪
	var emotions []string
	for _, face := range vr.FaceAnnotations {
		if likely(face.JoyLikelihood) {
			emotions = append(emotions, "happy")
		}
		if likely(face.SorrowLikelihood) {
			emotions = append(emotions, "sad")
		}
		if likely(face.SurpriseLikelihood) {
			emotions = append(emotions, "surprised")
		}
	}
	emotions = dedupe(emotions)

	// 主色调（最多5个）
	var colors []string
	for i, ci := range vr.ImagePropertiesAnnotation.DominantColors.Colors {
		if i >= 5 {
			break
		}
		c := ci.Color
		colors = append(colors, fmt.Sprintf("rgb(%d,%d,%d)", int(c.Red), int(c.Green), int(c.Blue)))
	}

	// 地标与物体
	var landmarks []string
	for _, lm := range vr.LandmarkAnnotations {
		landmarks = append(landmarks, lm.Description)
	}
	var objects []string
	for _, obj := range vr.LocalizedObjectAnnotations {
		objects = append(objects, obj.Name)
	}

	// 室内/室外判断
	joined := strings.ToLower(strings.Join(labels, " "))
	indoor := containsAny(joined, indoorKeywords)
	outdoor := containsAny(joined, outdoorKeywords)

	// 气氛推断
	mood := "neutral"
	switch {
	case contains(emotions, "happy"):
		mood = "joyful"
	case contains(emotions, "sad"):
		mood = "melancholy"
	case containsAny(joined, []string{"sunset", "beach", "nature"}):
		mood = "peaceful"
	}

	settingType := "unknown"
	if len(landmarks) > 0 {
		settingType = landmarks[0]
	} else if len(objects) > 0 {
		settingType = objects[0]
	}

	if len(emotions) == 0 {
		emotions = []string{"neutral"}
	}

	keyElements := make([]string, 0, 8)
	keyElements = append(keyElements, head(labels, 5)...)
	keyElements = append(keyElements, head(objects, 3)...)

	return &project.PhotoAnalysis{
		People: project.People{
			Count:        len(vr.FaceAnnotations),
			Relationship: "unknown",
			Emotions:     emotions,
		},
		Setting: project.Setting{
			Type:   settingType,
			Indoor: indoor && !outdoor,
			Time:   "unknown",
			Season: "unknown",
		},
		Mood:        mood,
		Colors:      colors,
		KeyElements: keyElements,
	}
}

func likely(likelihood string) bool {
	return likelihood == "LIKELY" || likelihood == "VERY_LIKELY"
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func head(list []string, n int) []string {
	if len(list) < n {
		return list
	}
	return list[:n]
}
