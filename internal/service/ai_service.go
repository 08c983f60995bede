package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"souschef_backend/internal/config"
	"strings"
	"time"
)

// AIService 封装 OpenAI 兼容的 chat completions 接口
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaSpec struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
	Strict bool                   `json:"strict"`
}

type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *jsonSchemaSpec `json:"json_schema,omitempty"`
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// APIError 上游 AI 接口返回的错误
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("AI API error (status %d)", e.StatusCode)
}

// Complete 一次普通文本补全
func (s *AIService) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	return s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		TopP:        0.95,
	})
}

// CompleteJSON 带结构化输出约束的补全，返回原始 JSON 文本。
// 上游不一定遵守 response_format，调用方解析前仍需 StripFences。
func (s *AIService) CompleteJSON(ctx context.Context, system, user, schemaName string, schema map[string]interface{}) (string, error) {
	return s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaSpec{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	})
}

func (s *AIService) complete(ctx context.Context, reqBody ChatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil && result.Error.Message != "" {
		return "", &APIError{StatusCode: resp.StatusCode, Message: result.Error.Message}
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// apiErrorMessage 从错误响应体里提取人类可读的信息，解析失败返回空串
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

const genericAIErrorMessage = "An unexpected error occurred while communicating with the AI service."

// ExtractErrorMessage 把任意形态的生成错误转成用户可见的文案。
// 本函数自身绝不失败：认不出的形态一律落回通用提示。
func ExtractErrorMessage(err error) string {
	if err == nil {
		return genericAIErrorMessage
	}

	if apiErr, ok := err.(*APIError); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Error %d: the AI service rejected the request.", apiErr.StatusCode)
	}

	msg := err.Error()

	// 有些网关把错误包成一段 JSON 字符串
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if jsonErr := json.Unmarshal([]byte(msg), &nested); jsonErr == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	if strings.TrimSpace(msg) == "" {
		return genericAIErrorMessage
	}
	return msg
}

// StripFences 去掉模型输出里的 ```json 围栏标记
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
