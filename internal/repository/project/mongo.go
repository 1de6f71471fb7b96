package project

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"keepsake/internal/model/project"
)

// MongoRepo MongoDB 项目仓库实现
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo 创建 MongoDB 项目仓库
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	var p project.Project
	return &MongoRepo{coll: db.Collection(p.Collection())}
}

// Create 创建项目
func (r *MongoRepo) Create(ctx context.Context, p *project.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = project.StatusDraft
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

// FindByID 根据ID查询项目
func (r *MongoRepo) FindByID(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AppendPhotos 追加照片引用，同时清空旧的分析结果
func (r *MongoRepo) AppendPhotos(ctx context.Context, id string, photos []project.Photo) error {
	update := bson.M{
		"$push":  bson.M{"photos": bson.M{"$each": photos}},
		"$set":   bson.M{"updated_at": time.Now()},
		"$unset": bson.M{"photo_analyses": "", "analysis_summary": ""},
	}
	return r.updateOne(ctx, id, update)
}

// SetNarrative 设置叙事与风格
func (r *MongoRepo) SetNarrative(ctx context.Context, id string, narrative string, style project.Style) error {
	update := bson.M{
		"$set": bson.M{
			"narrative":  narrative,
			"style":      style,
			"updated_at": time.Now(),
		},
	}
	return r.updateOne(ctx, id, update)
}

// SetStatus 更新状态
func (r *MongoRepo) SetStatus(ctx context.Context, id string, status project.Status) error {
	update := bson.M{
		"$set":   bson.M{"status": status, "updated_at": time.Now()},
		"$unset": bson.M{"error": ""}, // failed 重试时清除旧错误
	}
	return r.updateOne(ctx, id, update)
}

// SaveAnalysis 保存分析结果并回到 draft
func (r *MongoRepo) SaveAnalysis(ctx context.Context, id string, analyses []*project.PhotoAnalysis, summary *project.AnalysisSummary) error {
	update := bson.M{
		"$set": bson.M{
			"photo_analyses":   analyses,
			"analysis_summary": summary,
			"status":           project.StatusDraft,
			"updated_at":       time.Now(),
		},
		"$unset": bson.M{"error": ""},
	}
	return r.updateOne(ctx, id, update)
}

// MarkCompleted 落库生成产物并进入终态
func (r *MongoRepo) MarkCompleted(ctx context.Context, id string, script *project.VideoScript, videoURL string, completedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"script":       script,
			"video_url":    videoURL,
			"status":       project.StatusCompleted,
			"completed_at": completedAt,
			"updated_at":   time.Now(),
		},
		"$unset": bson.M{"error": ""},
	}
	return r.updateOne(ctx, id, update)
}

// MarkFailed 记录失败原因
func (r *MongoRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	update := bson.M{
		"$set": bson.M{
			"status":     project.StatusFailed,
			"error":      reason,
			"updated_at": time.Now(),
		},
	}
	return r.updateOne(ctx, id, update)
}

// Delete 删除项目
func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
