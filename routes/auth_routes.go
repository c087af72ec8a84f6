package routes

import (
	"github.com/BerniceZTT/feedback_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册账户路由
// 路径与旧服务保持一致，不加前缀
func RegisterAuthRoutes(router *gin.Engine, auth *controllers.AuthController) {
	// 登录
	router.POST("/login", auth.Login)

	// 注册
	router.POST("/register", auth.Register)

	// 找回密码
	router.POST("/forgot-password", auth.ForgotPassword)

	// 重置密码
	router.POST("/reset-password", auth.ResetPassword)
}
