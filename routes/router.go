package routes

import (
	"github.com/BerniceZTT/feedback_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, auth *controllers.AuthController, feedback *controllers.FeedbackController) {
	RegisterAuthRoutes(router, auth)
	RegisterFeedbackRoutes(router, feedback)
}
