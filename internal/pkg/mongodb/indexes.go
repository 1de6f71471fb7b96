package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"keepsake/internal/model/project"
)

// EnsureIndexes 创建所有模型的索引
// 应用启动时统一调用
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&project.Project{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
