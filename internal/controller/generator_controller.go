package controller

import (
	"net/http"
	"souschef_backend/internal/model"
	"souschef_backend/internal/service"
	"souschef_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type GeneratorController struct {
	courseService    *service.CourseService
	editorService    *service.EditorService
	generatorService *service.GeneratorService
}

func NewGeneratorController(courseService *service.CourseService, editorService *service.EditorService, generatorService *service.GeneratorService) *GeneratorController {
	return &GeneratorController{
		courseService:    courseService,
		editorService:    editorService,
		generatorService: generatorService,
	}
}

type generateOutlineRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateOutline 生成课程骨架
// @Summary 生成课程骨架
// @Description 按主题生成标题、副标题和模块/课时骨架，结果由前端交给建课接口
// @Tags Generator
// @Accept json
// @Produce json
// @Param request body generateOutlineRequest true "课程主题"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /generate/outline [post]
func (ctl *GeneratorController) GenerateOutline(c *gin.Context) {
	var req generateOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	outline, err := ctl.generatorService.GenerateOutline(c.Request.Context(), req.Topic)
	if err != nil {
		util.Error(c, http.StatusBadGateway, service.ExtractErrorMessage(err))
		return
	}
	util.Success(c, outline)
}

// GenerateContent 生成课时正文
// @Summary 生成课时正文
// @Description 生成 Markdown 正文并作为 text 块追加到课时末尾，失败时不改动课程树
// @Tags Generator
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /courses/{id}/lessons/{lessonId}/generate/content [post]
func (ctl *GeneratorController) GenerateContent(c *gin.Context) {
	courseID := c.Param("id")
	lessonID := c.Param("lessonId")

	course, ok := ctl.courseService.Get(courseID)
	if !ok {
		util.NotFound(c)
		return
	}
	lesson, ok := course.FindLesson(lessonID)
	if !ok {
		util.Error(c, http.StatusNotFound, util.ErrLessonNotFound.Error())
		return
	}

	release, err := ctl.generatorService.AcquireLesson(lessonID)
	if err != nil {
		util.Error(c, http.StatusConflict, err.Error())
		return
	}
	defer release()

	text, err := ctl.generatorService.GenerateLessonContent(c.Request.Context(), lesson.Title, course.Title)
	if err != nil {
		util.Error(c, http.StatusBadGateway, service.ExtractErrorMessage(err))
		return
	}

	block := model.NewTextBlock(text)
	updated, err := ctl.editorService.AddBlock(courseID, lessonID, block)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Created(c, gin.H{"course": updated, "block": block})
}

// GenerateQuiz 生成课时测验
// @Summary 生成课时测验
// @Description 以课时的 text 块正文为素材生成选择题（无正文时退回课时描述），
// 	结果作为 quiz 块追加到课时末尾，失败时不改动课程树
// @Tags Generator
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /courses/{id}/lessons/{lessonId}/generate/quiz [post]
func (ctl *GeneratorController) GenerateQuiz(c *gin.Context) {
	courseID := c.Param("id")
	lessonID := c.Param("lessonId")

	course, ok := ctl.courseService.Get(courseID)
	if !ok {
		util.NotFound(c)
		return
	}
	lesson, ok := course.FindLesson(lessonID)
	if !ok {
		util.Error(c, http.StatusNotFound, util.ErrLessonNotFound.Error())
		return
	}

	release, err := ctl.generatorService.AcquireLesson(lessonID)
	if err != nil {
		util.Error(c, http.StatusConflict, err.Error())
		return
	}
	defer release()

	source := lessonTextContent(lesson)
	if source == "" {
		source = lesson.Description
	}

	questions, err := ctl.generatorService.GenerateQuiz(c.Request.Context(), lesson.Title, source)
	if err != nil {
		util.Error(c, http.StatusBadGateway, service.ExtractErrorMessage(err))
		return
	}

	block, err := model.NewQuizBlock(questions)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	updated, err := ctl.editorService.AddBlock(courseID, lessonID, block)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Created(c, gin.H{"course": updated, "block": block})
}

// lessonTextContent 拼接课时内全部 text 块的正文
func lessonTextContent(lesson model.Lesson) string {
	var parts []string
	for _, b := range lesson.Blocks {
		if b.Type == model.BlockText {
			parts = append(parts, b.Value)
		}
	}
	return strings.Join(parts, "\n")
}
