package project

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Project 项目实体
// 一次"照片+叙事 → 短视频"的请求，是流水线跟踪的状态单元
type Project struct {
	ID        string  `bson:"id" json:"id"`                        // 项目ID（UUID）
	Title     string  `bson:"title,omitempty" json:"title,omitempty"` // 标题（可选）
	Status    Status  `bson:"status" json:"status"`                // 状态机状态
	Photos    []Photo `bson:"photos" json:"photos"`                // 照片引用（有序，追加）
	Narrative string  `bson:"narrative,omitempty" json:"narrative,omitempty"` // 用户叙事
	Style     Style   `bson:"style,omitempty" json:"style,omitempty"`         // 风格偏好

	// 分析结果：分析成功前为空；长度与分析时的照片数一致
	PhotoAnalyses   []*PhotoAnalysis `bson:"photo_analyses,omitempty" json:"photo_analyses,omitempty"`
	AnalysisSummary *AnalysisSummary `bson:"analysis_summary,omitempty" json:"analysis_summary,omitempty"`

	// 生成结果：仅在 completed 时整体落库
	Script   *VideoScript `bson:"script,omitempty" json:"script,omitempty"`
	VideoURL string       `bson:"video_url,omitempty" json:"video_url,omitempty"` // 仅 completed 时非空

	Error string `bson:"error,omitempty" json:"error,omitempty"` // 仅 failed 时非空

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"` // 终态成功时设置一次
}

// Photo 照片引用
type Photo struct {
	ID          string    `bson:"id" json:"id"`                     // 照片ID（UUID）
	Filename    string    `bson:"filename" json:"filename"`         // 原始文件名
	Key         string    `bson:"key" json:"-"`                     // 存储 key
	ContentType string    `bson:"content_type" json:"content_type"` // MIME 类型
	Size        int64     `bson:"size" json:"size"`                 // 字节数
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// Collection 返回集合名称
func (p *Project) Collection() string {
	return "projects"
}

// EnsureIndexes 创建和维护索引
func (p *Project) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
