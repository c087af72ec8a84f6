package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SaveAndLoad(t *testing.T) {
	mem := NewMemoryStore()
	sessions := NewSessionStore(mem)

	_, ok := sessions.Current()
	assert.False(t, ok)

	sessions.Save(Session{Name: "Amy", Email: "amy@example.com"})

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "amy@example.com", current.Email)
	assert.Equal(t, "Amy", current.Name)
}

func TestSession_ClearLeavesLikeStateIntact(t *testing.T) {
	mem := NewMemoryStore()
	sessions := NewSessionStore(mem)
	likes := NewLikeState(mem)

	sessions.Save(Session{Email: "amy@example.com"})
	likes.Toggle("a")

	// 退出登录只清会话，点赞状态保留
	sessions.Clear()

	_, ok := sessions.Current()
	assert.False(t, ok)

	reloaded := NewLikeState(mem)
	assert.True(t, reloaded.Marked("a"))
	assert.Equal(t, 1, reloaded.LikeCount("a"))
}

func TestSession_CorruptDataIgnored(t *testing.T) {
	mem := NewMemoryStore()
	mem.Set(sessionKey, "{broken")

	sessions := NewSessionStore(mem)
	_, ok := sessions.Current()
	assert.False(t, ok)
}
