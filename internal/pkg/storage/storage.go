package storage

import (
	"context"
	"io"
	"time"
)

// Storage 存储接口
// 项目的照片与视频都通过这个接口读写，编排器不感知具体后端
type Storage interface {
	// Upload 上传文件（服务端上传），返回可访问的URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download 下载文件
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete 删除单个文件
	Delete(ctx context.Context, key string) error

	// DeletePrefix 删除指定前缀下的所有文件（删除项目时清理全部关联文件）
	DeletePrefix(ctx context.Context, prefix string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetPresignedDownloadURL 获取预签名下载URL
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)

// PhotoKey 项目照片的存储 key
func PhotoKey(projectID, photoID, ext string) string {
	return "projects/" + projectID + "/photos/" + photoID + ext
}

// VideoKey 项目视频的存储 key
func VideoKey(projectID, videoID string) string {
	return "projects/" + projectID + "/videos/" + videoID + ".mp4"
}

// ProjectPrefix 项目所有文件的公共前缀
func ProjectPrefix(projectID string) string {
	return "projects/" + projectID + "/"
}
