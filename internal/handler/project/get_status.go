package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus 查询项目进度
// @Summary      查询进度
// @Description  查询项目的进度投影（状态、进度百分比、提示语），completed 时附带视频URL。
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id}/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.projectService.GetStatus(ctx, c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    view,
	})
}
