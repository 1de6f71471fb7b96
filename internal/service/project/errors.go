package project

import "errors"

// 前置条件违规以哨兵错误同步返回，项目状态保持不变
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNoPhotos         = errors.New("project has no photos")
	ErrNarrativeNotSet  = errors.New("project narrative is not set")
	ErrNotAnalyzed      = errors.New("project photos are not analyzed")
	ErrProjectBusy      = errors.New("project has work in flight")
	ErrProjectCompleted = errors.New("project is already completed")
	ErrTooManyPhotos    = errors.New("too many photos")
	ErrInvalidFileType  = errors.New("file is not an image")
	ErrInvalidStyle     = errors.New("invalid style")
)
