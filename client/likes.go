package client

import (
	"encoding/json"
	"sync"
	"time"
)

// 本地存储键，与会话状态相互独立
const (
	likesKey  = "fb_likes"
	markedKey = "fb_marked"
)

// suppressionWindow 同一条反馈上连续触发的抑制窗口
// 用于吸收误触的快速重复点击，避免重复计数
const suppressionWindow = 800 * time.Millisecond

// LikeState 点赞/标记交互层
// 纯客户端状态，按反馈ID记录标记与计数，不与服务端对账
type LikeState struct {
	mu         sync.Mutex
	store      KeyValueStore
	now        func() time.Time
	likes      map[string]int
	marked     map[string]bool
	lastToggle map[string]time.Time
}

// NewLikeState 创建交互层并从本地存储恢复状态
func NewLikeState(store KeyValueStore) *LikeState {
	s := &LikeState{
		store:      store,
		now:        time.Now,
		likes:      make(map[string]int),
		marked:     make(map[string]bool),
		lastToggle: make(map[string]time.Time),
	}

	// 损坏的存量数据直接丢弃，从空状态开始
	if raw, ok := store.Get(likesKey); ok {
		var likes map[string]int
		if err := json.Unmarshal([]byte(raw), &likes); err == nil {
			s.likes = likes
		}
	}
	if raw, ok := store.Get(markedKey); ok {
		var marked map[string]bool
		if err := json.Unmarshal([]byte(raw), &marked); err == nil {
			s.marked = marked
		}
	}

	return s
}

// Toggle 翻转指定反馈的标记状态并调整计数
// 抑制窗口内的重复触发是空操作，返回值表示本次是否生效
func (s *LikeState) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.lastToggle[id]; ok && now.Sub(last) < suppressionWindow {
		return false
	}
	s.lastToggle[id] = now

	already := s.marked[id]
	s.marked[id] = !already

	if already {
		// 取消标记，计数下限为0
		if s.likes[id] > 0 {
			s.likes[id]--
		} else {
			s.likes[id] = 0
		}
	} else {
		s.likes[id]++
	}

	s.persist()
	return true
}

// Marked 指定反馈是否已标记
func (s *LikeState) Marked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked[id]
}

// LikeCount 指定反馈的本地计数
func (s *LikeState) LikeCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likes[id]
}

// persist 每次变更后立即写回本地存储
// 调用方需持有锁
func (s *LikeState) persist() {
	if data, err := json.Marshal(s.likes); err == nil {
		s.store.Set(likesKey, string(data))
	}
	if data, err := json.Marshal(s.marked); err == nil {
		s.store.Set(markedKey, string(data))
	}
}
