package routes

import (
	"github.com/BerniceZTT/feedback_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterFeedbackRoutes 注册反馈路由
func RegisterFeedbackRoutes(router *gin.Engine, feedback *controllers.FeedbackController) {
	// 提交反馈（multipart，可携带单张图片）
	router.POST("/feedback", feedback.Create)

	// 获取全部反馈，最新在前
	router.GET("/feedbacks", feedback.List)
}
