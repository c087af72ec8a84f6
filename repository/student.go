package repository

import (
	"context"

	"github.com/BerniceZTT/feedback_end/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StudentRepository 学生账户持久化接口
type StudentRepository interface {
	// FindByEmail 按邮箱查找账户，未找到时返回 mongo.ErrNoDocuments
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	// Insert 创建账户，邮箱重复由唯一索引报错
	Insert(ctx context.Context, student *models.Student) error
	// UpdatePassword 更新指定邮箱账户的密码
	UpdatePassword(ctx context.Context, email, password string) error
}

// mongoStudentRepository StudentRepository 的MongoDB实现
type mongoStudentRepository struct {
	coll *mongo.Collection
}

// NewStudentRepository 创建学生账户仓库
func NewStudentRepository() StudentRepository {
	return &mongoStudentRepository{coll: Collection(StudentsCollection)}
}

func (r *mongoStudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *mongoStudentRepository) Insert(ctx context.Context, student *models.Student) error {
	result, err := r.coll.InsertOne(ctx, student)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid
	}
	return nil
}

func (r *mongoStudentRepository) UpdatePassword(ctx context.Context, email, password string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": password}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
