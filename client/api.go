package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/BerniceZTT/feedback_end/models"
)

// AuthOutcome 登录结果
// 服务端固定以200状态返回字面量字符串，需要按内容判断成败
type AuthOutcome string

const (
	AuthSuccess       AuthOutcome = "Success"
	AuthWrongPassword AuthOutcome = "Password is incorrect"
	AuthNotRegistered AuthOutcome = "User not registered"
)

// Submission 反馈提交内容
type Submission struct {
	Topic     string
	Category  string
	Priority  string
	Message   string
	ImageName string
	Image     io.Reader
}

// API 反馈门户的HTTP客户端
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI 创建API客户端
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListFeedbacks 拉取全部反馈，最新在前
func (a *API) ListFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/feedbacks", nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("拉取反馈失败: 状态码 %d", resp.StatusCode)
	}

	var list []models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// SubmitFeedback 以multipart表单提交一条反馈
func (a *API) SubmitFeedback(ctx context.Context, submission Submission) (*models.Feedback, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if submission.Topic != "" {
		if err := writer.WriteField("topic", submission.Topic); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("category", submission.Category); err != nil {
		return nil, err
	}
	if err := writer.WriteField("priority", submission.Priority); err != nil {
		return nil, err
	}
	if err := writer.WriteField("message", submission.Message); err != nil {
		return nil, err
	}

	if submission.Image != nil {
		part, err := writer.CreateFormFile("image", submission.ImageName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, submission.Image); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/feedback", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("提交反馈失败: 状态码 %d", resp.StatusCode)
	}

	var fb models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Login 登录并返回服务端的结果字面量
func (a *API) Login(ctx context.Context, email, password string) (AuthOutcome, error) {
	payload, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("登录请求失败: 状态码 %d", resp.StatusCode)
	}

	var outcome string
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return "", err
	}
	return AuthOutcome(outcome), nil
}

// Register 注册账户
func (a *API) Register(ctx context.Context, name, email, password string) (*models.Student, error) {
	payload, err := json.Marshal(models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/register", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("注册请求失败: 状态码 %d", resp.StatusCode)
	}

	var student models.Student
	if err := json.NewDecoder(resp.Body).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}
