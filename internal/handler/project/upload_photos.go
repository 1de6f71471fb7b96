package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectsvc "keepsake/internal/service/project"
)

// UploadPhotosResponseData 照片上传响应数据
type UploadPhotosResponseData struct {
	Photos []PhotoInfo `json:"photos"` // 本次上传的照片
}

// UploadPhotos 批量上传照片
// @Summary      上传照片
// @Description  multipart 批量上传项目照片（files 字段），单项目照片总数有上限，仅接受 image/* 类型。上传新照片会清空已有的分析结果。
// @Tags         项目管理
// @Accept       multipart/form-data
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Param        files       formData  file    true  "照片文件（可多个）"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "请求参数错误"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      409         {object}  ErrorResponse  "项目有任务进行中"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id}/photos [post]
func (h *Handler) UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid multipart form",
			Detail:  err.Error(),
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "No files in request",
		})
		return
	}

	uploads := make([]projectsvc.PhotoUpload, 0, len(files))
	opened := make([]interface{ Close() error }, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "Failed to read uploaded file",
				Detail:  err.Error(),
			})
			return
		}
		opened = append(opened, f)

		uploads = append(uploads, projectsvc.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}

	ctx := c.Request.Context()

	photos, err := h.projectService.UploadPhotos(ctx, c.Param("project_id"), uploads)
	if err != nil {
		respondError(c, err)
		return
	}

	infos := make([]PhotoInfo, len(photos))
	for i, photo := range photos {
		infos[i] = toPhotoInfo(photo)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "照片上传成功",
		"data":    UploadPhotosResponseData{Photos: infos},
	})
}
