package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"souschef_backend/internal/config"
	"souschef_backend/internal/middleware"
	"souschef_backend/internal/model"
	"souschef_backend/internal/repository"
	"souschef_backend/internal/service"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	router  *gin.Engine
	courses *service.CourseService
}

// newFixture 组装一套完整的 HTTP 栈，AI 上游由 aiReply 伪装。
// aiStatus 非零时上游返回该状态码和 aiReply 原文。
func newFixture(t *testing.T, aiReply string, aiStatus int) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&repository.StoreSnapshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if aiStatus != 0 {
			w.WriteHeader(aiStatus)
			w.Write([]byte(aiReply))
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": aiReply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Gate: config.GateConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
		AI: config.AIConfig{BaseURL: upstream.URL, Model: "test", SerializePerLesson: true},
	}

	repo := repository.NewSnapshotRepository(db)
	courses := service.NewCourseService(repo)
	editor := service.NewEditorService(courses, cfg)
	ai := service.NewAIService(cfg.AI)
	generator := service.NewGeneratorService(ai, cfg.AI, nil)
	viewer := service.NewViewerService(courses, cfg)

	courseCtl := NewCourseController(courses, editor)
	editorCtl := NewEditorController(editor)
	generatorCtl := NewGeneratorController(courses, editor, generator)
	viewerCtl := NewViewerController(viewer)

	r := gin.New()
	api := r.Group("/api")
	{
		cs := api.Group("/courses")
		{
			cs.GET("", courseCtl.ListCourses)
			cs.POST("", courseCtl.CreateCourse)
			cs.GET("/:id", courseCtl.GetCourse)
			cs.PUT("/:id", courseCtl.ReplaceCourse)
			cs.PATCH("/:id", courseCtl.UpdateCourse)
			cs.DELETE("/:id", courseCtl.DeleteCourse)
			cs.POST("/:id/modules", editorCtl.AddModule)
			cs.PATCH("/:id/modules/:moduleId", editorCtl.RenameModule)
			cs.POST("/:id/modules/:moduleId/lessons", editorCtl.AddLesson)
			cs.PATCH("/:id/lessons/:lessonId", editorCtl.UpdateLesson)
			cs.POST("/:id/lessons/:lessonId/blocks", editorCtl.AddBlock)
			cs.DELETE("/:id/lessons/:lessonId/blocks/:blockId", editorCtl.RemoveBlock)
			cs.POST("/:id/lessons/:lessonId/generate/content", generatorCtl.GenerateContent)
			cs.POST("/:id/lessons/:lessonId/generate/quiz", generatorCtl.GenerateQuiz)
		}
		api.POST("/generate/outline", generatorCtl.GenerateOutline)
		view := api.Group("/view")
		{
			view.GET("/:id/summary", viewerCtl.Summary)
			view.POST("/:id/gate", viewerCtl.Gate)
			view.GET("/:id", middleware.GateMiddleware(cfg), viewerCtl.View)
		}
	}

	return &fixture{router: r, courses: courses}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// seedLesson 建一门带单课时的课程
func (f *fixture) seedLesson(t *testing.T) (model.Course, model.Lesson) {
	t.Helper()
	c, err := f.courses.Create("HTTP Course", &model.Outline{
		Title: "HTTP Course",
		Modules: []model.OutlineModule{
			{Title: "M", Lessons: []model.OutlineLesson{{Title: "L", Description: "d"}}},
		},
	})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return c, c.Modules[0].Lessons[0]
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}
