package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalyzePhotos 分析项目照片
// @Summary      分析照片
// @Description  对项目的全部照片同步执行图片分析并生成整体主题摘要。分析期间项目处于 analyzing 状态，完成后回到 draft。
// @Tags         项目管理
// @Produce      json
// @Param        project_id  path      string  true  "项目ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "前置条件不满足"
// @Failure      404         {object}  ErrorResponse  "项目不存在"
// @Failure      409         {object}  ErrorResponse  "项目有任务进行中"
// @Failure      500         {object}  ErrorResponse  "上游分析失败"
// @Router       /api/v1/projects/{project_id}/analyze [post]
func (h *Handler) AnalyzePhotos(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectService.RunAnalysis(ctx, c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "照片分析完成",
		"data": gin.H{
			"photo_analyses":   p.PhotoAnalyses,
			"analysis_summary": p.AnalysisSummary,
		},
	})
}
