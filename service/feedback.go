package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/BerniceZTT/feedback_end/models"
	"github.com/BerniceZTT/feedback_end/repository"
	"github.com/BerniceZTT/feedback_end/utils"
)

// AttachmentStore 附件存储接口
type AttachmentStore interface {
	Store(originalName string, r io.Reader) (string, error)
}

// AttachmentInput 提交时携带的附件
type AttachmentInput struct {
	FileName string
	Reader   io.Reader
}

// SubmitFeedbackInput 反馈提交请求
// 只有 Message 是必填项，其余字段可缺省
type SubmitFeedbackInput struct {
	Topic    string
	Category string
	Priority string
	Message  string
	Image    *AttachmentInput
}

// FeedbackService 反馈提交与查询服务
type FeedbackService struct {
	repo  repository.FeedbackRepository
	store AttachmentStore
}

// NewFeedbackService 创建反馈服务
func NewFeedbackService(repo repository.FeedbackRepository, store AttachmentStore) *FeedbackService {
	return &FeedbackService{repo: repo, store: store}
}

// Submit 校验并落库一条反馈
// 附件先于记录写入，附件失败则整体失败、不产生记录；
// 记录写入失败后不回收已落盘的附件（孤儿文件是可接受的失败形态）。
// 重复提交会产生两条独立记录，这里不做去重。
func (s *FeedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, utils.CreateValidationError("message required")
	}

	fb := &models.Feedback{
		Topic:    input.Topic,
		Category: input.Category,
		Priority: normalizePriority(input.Priority),
		Message:  input.Message,
	}

	if input.Image != nil {
		filename, err := s.store.Store(input.Image.FileName, input.Image.Reader)
		if err != nil {
			utils.LogError(err, map[string]interface{}{"fileName": input.Image.FileName}, "附件保存失败")
			return nil, utils.CreateStorageError("附件保存失败: " + err.Error())
		}
		fb.Image = filename
	}

	now := time.Now()
	fb.CreatedAt = now
	fb.UpdatedAt = now

	if err := s.repo.Insert(ctx, fb); err != nil {
		utils.LogError(err, nil, "保存反馈失败")
		return nil, utils.CreateDatabaseError(err)
	}

	return fb, nil
}

// ListAll 返回全部反馈，最新在前
func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	list, err := s.repo.FindAllByRecency(ctx)
	if err != nil {
		utils.LogError(err, nil, "查询反馈失败")
		return nil, utils.CreateDatabaseError(err)
	}
	return list, nil
}

// normalizePriority 缺省或非法取值一律回落到 Low
func normalizePriority(p string) models.Priority {
	priority := models.Priority(p)
	if !priority.IsValid() {
		return models.PriorityLow
	}
	return priority
}
