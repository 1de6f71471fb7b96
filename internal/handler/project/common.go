package project

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keepsake/internal/model/project"
	httputil "keepsake/internal/pkg/http"
	projectsvc "keepsake/internal/service/project"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// PhotoInfo 照片信息 DTO
type PhotoInfo struct {
	ID          string `json:"id"`           // 照片ID
	Filename    string `json:"filename"`     // 原始文件名
	ContentType string `json:"content_type"` // MIME 类型
	Size        int64  `json:"size"`         // 字节数
	UploadedAt  string `json:"uploaded_at"`  // 上传时间
}

// ProjectInfo 项目信息 DTO
type ProjectInfo struct {
	ID              string                   `json:"id"`                         // 项目ID
	Title           string                   `json:"title,omitempty"`            // 标题
	Status          string                   `json:"status"`                     // 状态
	Photos          []PhotoInfo              `json:"photos"`                     // 照片列表
	Narrative       string                   `json:"narrative,omitempty"`        // 用户叙事
	Style           string                   `json:"style,omitempty"`            // 风格偏好
	PhotoAnalyses   []*project.PhotoAnalysis `json:"photo_analyses,omitempty"`   // 照片分析结果
	AnalysisSummary *project.AnalysisSummary `json:"analysis_summary,omitempty"` // 整体主题摘要
	Script          *project.VideoScript     `json:"script,omitempty"`           // 分镜脚本
	VideoURL        string                   `json:"video_url,omitempty"`        // 视频URL（completed 时非空）
	Error           string                   `json:"error,omitempty"`            // 失败原因（failed 时非空）
	CreatedAt       string                   `json:"created_at"`                 // 创建时间
	UpdatedAt       string                   `json:"updated_at"`                 // 更新时间
	CompletedAt     string                   `json:"completed_at,omitempty"`     // 完成时间
}

// toPhotoInfo 将 Photo 实体转换为 PhotoInfo
func toPhotoInfo(photo project.Photo) PhotoInfo {
	return PhotoInfo{
		ID:          photo.ID,
		Filename:    photo.Filename,
		ContentType: photo.ContentType,
		Size:        photo.Size,
		UploadedAt:  photo.UploadedAt.Format(time.RFC3339),
	}
}

// toProjectInfo 将 Project 实体转换为 ProjectInfo DTO
func toProjectInfo(p *project.Project) ProjectInfo {
	photos := make([]PhotoInfo, len(p.Photos))
	for i, photo := range p.Photos {
		photos[i] = toPhotoInfo(photo)
	}

	info := ProjectInfo{
		ID:              p.ID,
		Title:           p.Title,
		Status:          p.Status.String(),
		Photos:          photos,
		Narrative:       p.Narrative,
		Style:           string(p.Style),
		PhotoAnalyses:   p.PhotoAnalyses,
		AnalysisSummary: p.AnalysisSummary,
		Script:          p.Script,
		VideoURL:        p.VideoURL,
		Error:           p.Error,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
	if p.CompletedAt != nil {
		info.CompletedAt = p.CompletedAt.Format(time.RFC3339)
	}
	return info
}

// respondError 按错误类型映射HTTP状态码与业务错误码
// 前置条件违规 400，冲突 409，未找到 404，其余按上游失败 500 处理
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := 50001

	switch {
	case errors.Is(err, projectsvc.ErrProjectNotFound):
		status, code = http.StatusNotFound, 40401
	case errors.Is(err, projectsvc.ErrProjectBusy):
		status, code = http.StatusConflict, 40901
	case errors.Is(err, projectsvc.ErrProjectCompleted):
		status, code = http.StatusConflict, 40902
	case errors.Is(err, projectsvc.ErrNoPhotos):
		status, code = http.StatusBadRequest, 40002
	case errors.Is(err, projectsvc.ErrNarrativeNotSet):
		status, code = http.StatusBadRequest, 40003
	case errors.Is(err, projectsvc.ErrNotAnalyzed):
		status, code = http.StatusBadRequest, 40004
	case errors.Is(err, projectsvc.ErrTooManyPhotos):
		status, code = http.StatusBadRequest, 40005
	case errors.Is(err, projectsvc.ErrInvalidFileType):
		status, code = http.StatusBadRequest, 40006
	case errors.Is(err, projectsvc.ErrInvalidStyle):
		status, code = http.StatusBadRequest, 40007
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
