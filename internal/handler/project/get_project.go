package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProject 查询项目详情
// @Summary      查询项目
// @Description  按项目ID查询项目快照，包含照片、分析结果与生成产物。
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectService.Get(ctx, c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toProjectInfo(p),
	})
}
