package controllers

import (
	"net/http"

	"github.com/BerniceZTT/feedback_end/service"
	"github.com/BerniceZTT/feedback_end/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackController 反馈相关接口
type FeedbackController struct {
	svc *service.FeedbackService
}

// NewFeedbackController 创建反馈控制器
func NewFeedbackController(svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{svc: svc}
}

// Create 提交反馈（multipart表单，image为可选的单个文件）
func (ctl *FeedbackController) Create(c *gin.Context) {
	message := c.PostForm("message")
	if message == "" {
		// 旧前端的部分版本用 msg 字段提交
		message = c.PostForm("msg")
	}

	input := service.SubmitFeedbackInput{
		Topic:    c.PostForm("topic"),
		Category: c.PostForm("category"),
		Priority: c.PostForm("priority"),
		Message:  message,
	}

	file, header, err := c.Request.FormFile("image")
	if err == nil {
		defer file.Close()
		input.Image = &service.AttachmentInput{
			FileName: header.Filename,
			Reader:   file,
		}
	}

	fb, err := ctl.svc.Submit(c.Request.Context(), input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().
		Str("id", fb.ID.Hex()).
		Str("priority", string(fb.Priority)).
		Bool("hasImage", fb.Image != "").
		Msg("反馈提交成功")

	c.JSON(http.StatusCreated, fb)
}

// List 返回全部反馈，按创建时间降序
func (ctl *FeedbackController) List(c *gin.Context) {
	list, err := ctl.svc.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
