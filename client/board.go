package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/BerniceZTT/feedback_end/models"
	"github.com/BerniceZTT/feedback_end/utils"
)

// defaultPollInterval 反馈列表的轮询周期
const defaultPollInterval = 60 * time.Second

// FeedbackBoard 反馈浏览板
// 定时拉取并整体替换本地列表；拉取失败时保留上一次的数据
// （宁可展示过期数据也不清空页面）
type FeedbackBoard struct {
	mu        sync.Mutex
	api       *API
	interval  time.Duration
	feedbacks []models.Feedback
	query     string
	selected  *models.Feedback

	// 并发刷新按请求序号取最新，过期响应直接丢弃
	reqSeq     uint64
	appliedSeq uint64
}

// NewFeedbackBoard 创建反馈浏览板
func NewFeedbackBoard(api *API) *FeedbackBoard {
	return &FeedbackBoard{api: api, interval: defaultPollInterval}
}

// Refresh 拉取最新列表并整体替换
func (b *FeedbackBoard) Refresh(ctx context.Context) {
	b.mu.Lock()
	b.reqSeq++
	seq := b.reqSeq
	b.mu.Unlock()

	list, err := b.api.ListFeedbacks(ctx)
	if err != nil {
		// 保留已展示的列表，只记日志
		utils.Logger.Error().Err(err).Msg("拉取反馈列表失败")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.appliedSeq {
		return
	}
	b.appliedSeq = seq
	b.feedbacks = list
}

// StartPolling 启动定时刷新，ctx取消后停止
func (b *FeedbackBoard) StartPolling(ctx context.Context) {
	go func() {
		b.Refresh(ctx)

		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.Refresh(ctx)
			}
		}
	}()
}

// SetQuery 更新搜索串
func (b *FeedbackBoard) SetQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = query
}

// Feedbacks 当前完整列表
func (b *FeedbackBoard) Feedbacks() []models.Feedback {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Feedback, len(b.feedbacks))
	copy(out, b.feedbacks)
	return out
}

// Filtered 按搜索串过滤后的列表
// 搜索串为空时返回全部；否则对主题、正文、分类做忽略大小写的子串匹配
func (b *FeedbackBoard) Filtered() []models.Feedback {
	b.mu.Lock()
	defer b.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(b.query))
	if q == "" {
		out := make([]models.Feedback, len(b.feedbacks))
		copy(out, b.feedbacks)
		return out
	}

	out := make([]models.Feedback, 0, len(b.feedbacks))
	for _, fb := range b.feedbacks {
		if strings.Contains(strings.ToLower(fb.Topic), q) ||
			strings.Contains(strings.ToLower(fb.Message), q) ||
			strings.Contains(strings.ToLower(fb.Category), q) {
			out = append(out, fb)
		}
	}
	return out
}

// Select 打开指定反馈的详情视图
func (b *FeedbackBoard) Select(id string) *models.Feedback {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.feedbacks {
		if b.feedbacks[i].ID.Hex() == id {
			fb := b.feedbacks[i]
			b.selected = &fb
			return &fb
		}
	}
	return nil
}

// Selected 当前打开的详情
func (b *FeedbackBoard) Selected() *models.Feedback {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// ClearSelection 关闭详情视图，回到列表
func (b *FeedbackBoard) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
}
