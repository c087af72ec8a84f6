package repository

import (
	"context"

	"github.com/BerniceZTT/feedback_end/models"
	"github.com/BerniceZTT/feedback_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// createdAtField 排序键，必须与 models.Feedback 的bson标签一致
const createdAtField = "createdAt"

// FeedbackRepository 反馈记录持久化接口
type FeedbackRepository interface {
	// Insert 写入一条反馈记录，成功后回填服务端生成的ID
	Insert(ctx context.Context, fb *models.Feedback) error
	// FindAllByRecency 返回全部反馈，按createdAt降序（最新在前）
	FindAllByRecency(ctx context.Context) ([]models.Feedback, error)
}

// mongoFeedbackRepository FeedbackRepository 的MongoDB实现
type mongoFeedbackRepository struct {
	coll *mongo.Collection
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository() FeedbackRepository {
	return &mongoFeedbackRepository{coll: Collection(FeedbacksCollection)}
}

func (r *mongoFeedbackRepository) Insert(ctx context.Context, fb *models.Feedback) error {
	result, err := r.coll.InsertOne(ctx, fb)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		fb.ID = oid
	}

	utils.LogDbOperation("insert", FeedbacksCollection, nil, fb.ID.Hex())
	return nil
}

func (r *mongoFeedbackRepository) FindAllByRecency(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: createdAtField, Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	// 空集合返回空数组而不是null
	list := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}
