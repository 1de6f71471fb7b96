package project

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title string `json:"title"` // 标题（可选）
}

// CreateProject 创建视频项目
// @Summary      创建项目
// @Description  创建一个新的照片视频项目，初始状态为 draft。这是生成流程的第一步。
// @Tags         项目管理
// @Accept       json
// @Produce      json
// @Param        request  body      CreateProjectRequest  false  "创建项目请求"
// @Success      201      {object}  map[string]interface{}  "成功响应"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	p, err := h.projectService.Create(ctx, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "项目创建成功",
		"data":    toProjectInfo(p),
	})
}
