package project

import (
	projectsvc "keepsake/internal/service/project"
)

// Handler 项目处理器
// 所有项目相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	projectService *projectsvc.Service
}

// NewHandler 创建项目处理器
func NewHandler(projectService *projectsvc.Service) *Handler {
	return &Handler{
		projectService: projectService,
	}
}
