package client

import "encoding/json"

// sessionKey 当前登录用户的存储键
// 与点赞状态的键相互独立，退出登录不清除点赞状态
const sessionKey = "user"

// Session 当前登录用户
type Session struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// SessionStore 会话持久化
type SessionStore struct {
	store KeyValueStore
}

// NewSessionStore 创建会话存储
func NewSessionStore(store KeyValueStore) *SessionStore {
	return &SessionStore{store: store}
}

// Save 保存会话
func (s *SessionStore) Save(session Session) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	s.store.Set(sessionKey, string(data))
}

// Current 读取当前会话
func (s *SessionStore) Current() (*Session, bool) {
	raw, ok := s.store.Get(sessionKey)
	if !ok {
		return nil, false
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, false
	}
	return &session, true
}

// Clear 退出登录时清除会话
func (s *SessionStore) Clear() {
	s.store.Remove(sessionKey)
}
