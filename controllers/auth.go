package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BerniceZTT/feedback_end/models"
	"github.com/BerniceZTT/feedback_end/repository"
	"github.com/BerniceZTT/feedback_end/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// 登录结果按旧服务的约定以200状态返回字面量字符串，
// 调用方通过响应内容而不是状态码区分成败
const (
	LoginSuccess       = "Success"
	LoginWrongPassword = "Password is incorrect"
	LoginNotRegistered = "User not registered"
)

// 重置令牌有效期
const resetTokenTTL = 15 * time.Minute

// AuthController 账户相关接口
type AuthController struct {
	repo          repository.StudentRepository
	resetTokenKey []byte
}

// NewAuthController 创建账户控制器
func NewAuthController(repo repository.StudentRepository, resetTokenKey string) *AuthController {
	return &AuthController{repo: repo, resetTokenKey: []byte(resetTokenKey)}
}

// Login 用户登录
// 密码按原样比对，不做散列（兼容旧服务）
func (ctl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	student, err := ctl.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 用户不存在")
			c.JSON(http.StatusOK, LoginNotRegistered)
			return
		}
		utils.Logger.Error().Err(err).Msg("查询用户出错")
		utils.ErrorResponse(c, err.Error(), http.StatusInternalServerError)
		return
	}

	if student.Password != req.Password {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 密码错误")
		c.JSON(http.StatusOK, LoginWrongPassword)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("登录成功")
	c.JSON(http.StatusOK, LoginSuccess)
}

// Register 用户注册
// 驱动层错误（如邮箱重复）原样回给前端，状态仍为200（兼容旧服务）
func (ctl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	student := models.Student{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := ctl.repo.Insert(c.Request.Context(), &student); err != nil {
		utils.Logger.Error().Err(err).Str("email", req.Email).Msg("注册失败")
		c.JSON(http.StatusOK, gin.H{"message": err.Error()})
		return
	}

	utils.Logger.Info().Str("email", student.Email).Msg("注册成功")
	c.JSON(http.StatusOK, student)
}

// ForgotPassword 找回密码
// 为已注册邮箱签发短期重置令牌
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := ctl.repo.FindByEmail(c.Request.Context(), req.Email); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, LoginNotRegistered)
			return
		}
		utils.Logger.Error().Err(err).Msg("查询用户出错")
		utils.ErrorResponse(c, err.Error(), http.StatusInternalServerError)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"exp":   time.Now().Add(resetTokenTTL).Unix(),
	})
	signed, err := token.SignedString(ctl.resetTokenKey)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("签发重置令牌失败")
		utils.ErrorResponse(c, "签发重置令牌失败", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("已签发密码重置令牌")
	utils.SuccessResponse(c, gin.H{"resetToken": signed}, "")
}

// ResetPassword 使用重置令牌更新密码
func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := jwt.Parse(req.Token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return ctl.resetTokenKey, nil
	})
	if err != nil || !token.Valid {
		utils.ErrorResponse(c, "重置令牌无效或已过期", http.StatusBadRequest)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		utils.ErrorResponse(c, "重置令牌无效或已过期", http.StatusBadRequest)
		return
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		utils.ErrorResponse(c, "重置令牌无效或已过期", http.StatusBadRequest)
		return
	}

	if err := ctl.repo.UpdatePassword(c.Request.Context(), email, req.Password); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, LoginNotRegistered)
			return
		}
		utils.Logger.Error().Err(err).Msg("更新密码失败")
		utils.ErrorResponse(c, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("email", email).Msg("密码重置成功")
	utils.SuccessResponse(c, nil, "密码重置成功")
}
