package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"souschef_backend/internal/config"
	"souschef_backend/internal/model"
	"souschef_backend/internal/util"
	"souschef_backend/pkg/logger"
	"souschef_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// maxQuizSourceLen 发送给模型的课时正文截断长度
const maxQuizSourceLen = 3000

// GeneratorService 三个生成器的统一入口：课程骨架、课时正文、测验。
// 结果要么可用要么报错，绝不半成品：响应解析或校验失败一律按失败处理，
// 调用方在失败时不得改动课程树。
type GeneratorService struct {
	ai  *AIService
	cfg config.AIConfig
	rdb *redis.Client // 可为 nil，此时不启用缓存

	mu       sync.Mutex
	inflight map[string]bool // lessonID -> 生成请求在途
}

func NewGeneratorService(ai *AIService, cfg config.AIConfig, rdb *redis.Client) *GeneratorService {
	return &GeneratorService{
		ai:       ai,
		cfg:      cfg,
		rdb:      rdb,
		inflight: make(map[string]bool),
	}
}

// AcquireLesson 申请某课时的生成名额。开启 serialize_per_lesson 后，
// 同一课时并发触发的第二个生成请求会被拒绝，避免两次 addBlock
// 基于过期快照互相覆盖。返回的 release 必须在生成结束后调用。
func (s *GeneratorService) AcquireLesson(lessonID string) (func(), error) {
	if !s.cfg.SerializePerLesson {
		return func() {}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[lessonID] {
		return nil, util.ErrGenerationInFlight
	}
	s.inflight[lessonID] = true
	return func() {
		s.mu.Lock()
		delete(s.inflight, lessonID)
		s.mu.Unlock()
	}, nil
}

var outlineSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":    map[string]interface{}{"type": "string"},
		"subtitle": map[string]interface{}{"type": "string"},
		"modules": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title": map[string]interface{}{"type": "string"},
					"lessons": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"title":       map[string]interface{}{"type": "string"},
								"description": map[string]interface{}{"type": "string"},
							},
							"required": []string{"title", "description"},
						},
					},
				},
				"required": []string{"title", "lessons"},
			},
		},
	},
	"required": []string{"title", "subtitle", "modules"},
}

var quizSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"questions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question": map[string]interface{}{"type": "string"},
					"options": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"correctAnswer": map[string]interface{}{
						"type":        "integer",
						"description": "Index (0-3) of the correct option.",
					},
				},
				"required": []string{"question", "options", "correctAnswer"},
			},
		},
	},
	"required": []string{"questions"},
}

// GenerateOutline 按主题生成课程骨架
func (s *GeneratorService) GenerateOutline(ctx context.Context, topic string) (*model.Outline, error) {
	start := time.Now()
	outline, err := s.generateOutline(ctx, topic)
	monitoring.ObserveGeneration("outline", start, err)
	return outline, err
}

func (s *GeneratorService) generateOutline(ctx context.Context, topic string) (*model.Outline, error) {
	cacheKey := s.cacheKey("outline", topic)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var outline model.Outline
		if err := json.Unmarshal([]byte(cached), &outline); err == nil {
			return &outline, nil
		}
	}

	system := "You are a world-class instructional designer."
	user := fmt.Sprintf(`Create a masterclass curriculum for the following topic: %q.
The curriculum must be expert-level, visionary and highly structured.
Include a powerful title, an inspiring subtitle and 3 to 4 high-impact modules.
Each module MUST contain 2 to 3 specific lessons with clear descriptions.
Respond exclusively in JSON.`, topic)

	raw, err := s.ai.CompleteJSON(ctx, system, user, "course_outline", outlineSchema)
	if err != nil {
		return nil, err
	}

	var outline model.Outline
	if err := json.Unmarshal([]byte(StripFences(raw)), &outline); err != nil {
		logger.Log.Warn("outline response is not valid JSON", zap.Error(err))
		return nil, fmt.Errorf("the generated curriculum has an invalid format")
	}
	if len(outline.Modules) == 0 {
		return nil, fmt.Errorf("the generated curriculum has an invalid format")
	}

	s.cacheSet(ctx, cacheKey, StripFences(raw))
	return &outline, nil
}

// GenerateLessonContent 生成 Markdown 格式的课时正文
func (s *GeneratorService) GenerateLessonContent(ctx context.Context, lessonTitle, courseTitle string) (string, error) {
	start := time.Now()
	text, err := s.generateLessonContent(ctx, lessonTitle, courseTitle)
	monitoring.ObserveGeneration("content", start, err)
	return text, err
}

func (s *GeneratorService) generateLessonContent(ctx context.Context, lessonTitle, courseTitle string) (string, error) {
	cacheKey := s.cacheKey("content", lessonTitle, courseTitle)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	system := "You are a sophisticated and pedagogical course author."
	user := fmt.Sprintf(`Write a complete, professional lesson titled %q for the course %q.

Use Markdown format:
1. Start with a # heading.
2. Add a captivating introduction.
3. Develop 3 key points with ### subheadings.
4. Include an expert quote or a "Golden Rule" as a blockquote (>).
5. List actionable steps.
6. End with a summary.`, lessonTitle, courseTitle)

	text, err := s.ai.Complete(ctx, system, user, 0.8)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("content generation returned an empty lesson")
	}

	s.cacheSet(ctx, cacheKey, text)
	return text, nil
}

// GenerateQuiz 根据课时正文生成测验。正文超长时先截断再发送。
// 每道题必须恰好 4 个选项且正确答案索引在 [0,3] 内，否则整个结果作废。
func (s *GeneratorService) GenerateQuiz(ctx context.Context, lessonTitle, content string) ([]model.QuizQuestion, error) {
	start := time.Now()
	questions, err := s.generateQuiz(ctx, lessonTitle, content)
	monitoring.ObserveGeneration("quiz", start, err)
	return questions, err
}

func (s *GeneratorService) generateQuiz(ctx context.Context, lessonTitle, content string) ([]model.QuizQuestion, error) {
	if len(content) > maxQuizSourceLen {
		content = content[:maxQuizSourceLen]
	}

	cacheKey := s.cacheKey("quiz", lessonTitle, content)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		if questions, err := parseQuizQuestions(cached); err == nil {
			return questions, nil
		}
	}

	system := "You are a sophisticated and pedagogical course author."
	user := fmt.Sprintf(`Analyze this lesson content and create a 3-question mastery quiz.
Lesson: %q
Content: %q

The questions must test deep understanding.
Each question must have 4 options and exactly 1 correct answer.
Respond in JSON.`, lessonTitle, content)

	raw, err := s.ai.CompleteJSON(ctx, system, user, "lesson_quiz", quizSchema)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuizQuestions(StripFences(raw))
	if err != nil {
		logger.Log.Warn("quiz response failed validation", zap.Error(err))
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, StripFences(raw))
	return questions, nil
}

// parseQuizQuestions 兼容裸数组和 {"questions": [...]} 两种返回形态
func parseQuizQuestions(raw string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		var wrapped struct {
			Questions []model.QuizQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, fmt.Errorf("the generated quiz has an invalid format")
		}
		questions = wrapped.Questions
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("the generated quiz has an invalid format")
	}
	for _, q := range questions {
		if len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("the generated quiz has an invalid format")
		}
	}
	return questions, nil
}

func (s *GeneratorService) cacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "gen:" + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

func (s *GeneratorService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.rdb == nil || s.cfg.CacheMinutes <= 0 {
		return "", false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *GeneratorService) cacheSet(ctx context.Context, key, val string) {
	if s.rdb == nil || s.cfg.CacheMinutes <= 0 {
		return
	}
	ttl := time.Duration(s.cfg.CacheMinutes) * time.Minute
	if err := s.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		logger.Log.Debug("failed to cache generation result", zap.Error(err))
	}
}
