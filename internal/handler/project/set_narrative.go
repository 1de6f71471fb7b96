package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keepsake/internal/model/project"
)

// SetNarrativeRequest 设置叙事请求
type SetNarrativeRequest struct {
	Narrative string `json:"narrative" binding:"required"` // 用户叙事（必填）
	Style     string `json:"style" binding:"required"`     // 风格偏好：romantic/nostalgic/happy/emotional/cinematic
}

// SetNarrative 设置项目叙事与风格
// @Summary      设置叙事
// @Description  设置项目的用户叙事和风格偏好，是生成脚本的输入。
// @Tags         项目管理
// @Accept       json
// @Produce      json
// @Param        project_id  path      string               true  "项目ID"
// @Param        request     body      SetNarrativeRequest  true  "设置叙事请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "请求参数错误"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      409         {object}  ErrorResponse  "项目有任务进行中"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id}/narrative [put]
func (h *Handler) SetNarrative(c *gin.Context) {
	var req SetNarrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if err := h.projectService.SetNarrative(ctx, c.Param("project_id"), req.Narrative, project.Style(req.Style)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "叙事设置成功",
	})
}
