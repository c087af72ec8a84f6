package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/BerniceZTT/feedback_end/utils"
)

// 客户端侧的提交约束
// 仅为提示性校验，服务端不复核图片类型和大小
const (
	maxMessageLength = 2000
	maxImageBytes    = 5 * 1024 * 1024
)

// FormState 表单状态
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
)

// 表单校验错误
var (
	ErrEmptyMessage      = errors.New("请填写反馈内容")
	ErrMessageTooLong    = errors.New("反馈内容不能超过2000字")
	ErrNotAnImage        = errors.New("请选择图片文件")
	ErrImageTooLarge     = errors.New("图片不能超过5MB")
	ErrAlreadySubmitting = errors.New("提交处理中，请稍候")
)

// ImageAttachment 待上传的图片
type ImageAttachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// FeedbackForm 反馈提交表单
// 状态机: Idle → Submitting → Idle；提交期间拒绝重复提交
type FeedbackForm struct {
	mu    sync.Mutex
	api   *API
	state FormState

	Topic    string
	Category string
	Priority string
	Message  string

	image   *ImageAttachment
	preview string
	notice  string
}

// NewFeedbackForm 创建表单，优先级默认为Low
func NewFeedbackForm(api *API) *FeedbackForm {
	return &FeedbackForm{api: api, Priority: "Low"}
}

// State 当前表单状态
func (f *FeedbackForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Notice 最近一次面向用户的提示
func (f *FeedbackForm) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Image 当前已附加的图片
func (f *FeedbackForm) Image() *ImageAttachment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.image
}

// Preview 当前图片的预览引用，无图片时为空串
func (f *FeedbackForm) Preview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

// AttachImage 附加图片
// 校验类型和大小；换图前先丢弃旧的预览引用
func (f *FeedbackForm) AttachImage(att ImageAttachment) error {
	if !strings.HasPrefix(att.ContentType, "image/") {
		f.setNotice(ErrNotAnImage.Error())
		return ErrNotAnImage
	}
	if len(att.Data) > maxImageBytes {
		f.setNotice(ErrImageTooLarge.Error())
		return ErrImageTooLarge
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.image = &att
	f.preview = "preview:" + att.Name
	return nil
}

// RemoveImage 移除已附加的图片和预览
func (f *FeedbackForm) RemoveImage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.image = nil
	f.preview = ""
}

// Submit 校验并提交表单
// 成功后字段复位；失败时保留填写内容，仅提示用户
func (f *FeedbackForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return ErrAlreadySubmitting
	}

	// 校验失败不进入 Submitting 状态
	if strings.TrimSpace(f.Message) == "" {
		f.notice = ErrEmptyMessage.Error()
		f.mu.Unlock()
		return ErrEmptyMessage
	}
	if len([]rune(f.Message)) > maxMessageLength {
		f.notice = ErrMessageTooLong.Error()
		f.mu.Unlock()
		return ErrMessageTooLong
	}

	f.state = FormSubmitting
	submission := Submission{
		Topic:    f.Topic,
		Category: f.Category,
		Priority: f.Priority,
		Message:  f.Message,
	}
	if f.image != nil {
		submission.ImageName = f.image.Name
		submission.Image = bytes.NewReader(f.image.Data)
	}
	f.mu.Unlock()

	_, err := f.api.SubmitFeedback(ctx, submission)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormIdle

	if err != nil {
		utils.Logger.Error().Err(err).Msg("提交反馈失败")
		f.notice = "反馈提交失败，请重试"
		return err
	}

	// 复位为初始值
	f.Topic = ""
	f.Category = ""
	f.Priority = "Low"
	f.Message = ""
	f.image = nil
	f.preview = ""
	f.notice = "反馈已提交，感谢你的建议！"
	return nil
}

func (f *FeedbackForm) setNotice(notice string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = notice
}
