package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/BerniceZTT/feedback_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindAllByRecency_SortsByCreatedAtDescending(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("按createdAt降序下发查询", func(mt *mtest.T) {
		newest := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		oldest := newest.Add(-time.Hour)
		newID, oldID := primitive.NewObjectID(), primitive.NewObjectID()

		ns := fmt.Sprintf("%s.%s", mt.DB.Name(), mt.Coll.Name())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: newID},
				{Key: "category", Value: "Facilities"},
				{Key: "priority", Value: "High"},
				{Key: "message", Value: "Lighting is broken in block C"},
				{Key: "image", Value: "1700000000000-lamp-shot.png"},
				{Key: "createdAt", Value: primitive.NewDateTimeFromTime(newest)},
				{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(newest)},
			},
			bson.D{
				{Key: "_id", Value: oldID},
				{Key: "priority", Value: "Low"},
				{Key: "message", Value: "older entry"},
				{Key: "createdAt", Value: primitive.NewDateTimeFromTime(oldest)},
				{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(oldest)},
			},
		))

		repo := &mongoFeedbackRepository{coll: mt.Coll}
		list, err := repo.FindAllByRecency(context.Background())
		require.NoError(mt, err)

		// find命令必须携带 sort: {createdAt: -1}，排序完全由服务端保证
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)

		sortVal, err := evt.Command.LookupErr("sort")
		require.NoError(mt, err, "find命令缺少sort")
		sortDoc, ok := sortVal.DocumentOK()
		require.True(mt, ok)
		direction, ok := sortDoc.Lookup(createdAtField).Int32OK()
		require.True(mt, ok)
		assert.Equal(mt, int32(-1), direction)

		// 解码后字段原样返回，最新在前
		require.Len(mt, list, 2)
		assert.Equal(mt, newID, list[0].ID)
		assert.Equal(mt, "Facilities", list[0].Category)
		assert.Equal(mt, models.PriorityHigh, list[0].Priority)
		assert.Equal(mt, "Lighting is broken in block C", list[0].Message)
		assert.Equal(mt, "1700000000000-lamp-shot.png", list[0].Image)
		assert.True(mt, newest.Equal(list[0].CreatedAt))
		assert.Equal(mt, oldID, list[1].ID)
		assert.True(mt, list[0].CreatedAt.After(list[1].CreatedAt))
	})
}

func TestInsert_BackfillsGeneratedID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("写入成功后回填ID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := &mongoFeedbackRepository{coll: mt.Coll}
		fb := &models.Feedback{
			Priority:  models.PriorityLow,
			Message:   "first entry",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		require.NoError(mt, repo.Insert(context.Background(), fb))
		assert.False(mt, fb.ID.IsZero())
	})
}

// 排序键与结构体的bson标签必须指向同一字段名
func TestFeedbackDocumentCarriesSortKey(t *testing.T) {
	raw, err := bson.Marshal(models.Feedback{
		Priority:  models.PriorityLow,
		Message:   "x",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = bson.Raw(raw).LookupErr(createdAtField)
	assert.NoError(t, err)
}
