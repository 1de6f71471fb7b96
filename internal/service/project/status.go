package project

import (
	"context"

	"keepsake/internal/model/project"
)

// StatusView 进度投影
type StatusView struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	Message   string `json:"message"`
	VideoURL  string `json:"video_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Project 的每个状态都有确定的进度值和提示语
// failed 的提示语携带失败原因
func Projection(p *project.Project) StatusView {
	view := StatusView{
		ProjectID: p.ID,
		Status:    p.Status.String(),
	}

	switch p.Status {
	case project.StatusDraft:
		view.Progress = 0
		view.Message = "Ready to generate"
	case project.StatusAnalyzing:
		view.Progress = 25
		view.Message = "Analyzing photos..."
	case project.StatusGenerating:
		view.Progress = 50
		view.Message = "Generating video..."
	case project.StatusCompleted:
		view.Progress = 100
		view.Message = "Video ready!"
		view.VideoURL = p.VideoURL
	case project.StatusFailed:
		view.Progress = 0
		view.Message = "Failed: " + p.Error
		view.Error = p.Error
	}

	return view
}

// GetStatus 查询项目进度
func (s *Service) GetStatus(ctx context.Context, projectID string) (*StatusView, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	view := Projection(p)
	return &view, nil
}
