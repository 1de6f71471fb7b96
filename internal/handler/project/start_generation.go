package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartGeneration 发起视频生成
// @Summary      生成视频
// @Description  调度视频生成流水线（脚本生成 + 逐场景视频合成）。守卫检查同步返回，生成本体异步执行，进度通过 status 接口查询。
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      202         {object}  map[string]interface{}  "已调度"
// @Failure      400         {object}  ErrorResponse  "前置条件不满足"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      409         {object}  ErrorResponse  "生成已在进行中"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects/{project_id}/generate [post]
func (h *Handler) StartGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	projectID := c.Param("project_id")
	if err := h.projectService.StartGeneration(ctx, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"code":    0,
		"message": "生成任务已调度",
		"data": gin.H{
			"project_id": projectID,
		},
	})
}
