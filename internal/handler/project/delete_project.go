package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteProject 删除项目
// @Summary      删除项目
// @Description  删除项目及其全部存储文件（照片与视频）。再次删除同一项目返回 404。
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.projectService.Delete(ctx, c.Param("project_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "项目已删除",
	})
}
