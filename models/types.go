package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority 反馈优先级枚举
type Priority string

const (
	PriorityLow    Priority = "Low"    // 低
	PriorityMedium Priority = "Medium" // 中
	PriorityHigh   Priority = "High"   // 高
)

// IsValid 判断优先级是否为合法取值
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Feedback 反馈记录
// 创建后不再修改、不可删除，createdAt 为唯一排序键
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Topic     string             `bson:"topic,omitempty" json:"topic,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Priority  Priority           `bson:"priority" json:"priority"`
	Message   string             `bson:"message" json:"message"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Student 学生账户
// 密码按原样存储、按原样比对（兼容旧服务行为）
type Student struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
