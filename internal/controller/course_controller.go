package controller

import (
	"errors"
	"net/http"
	"souschef_backend/internal/model"
	"souschef_backend/internal/service"
	"souschef_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	courseService *service.CourseService
	editorService *service.EditorService
}

func NewCourseController(courseService *service.CourseService, editorService *service.EditorService) *CourseController {
	return &CourseController{courseService: courseService, editorService: editorService}
}

// ListCourses 课程列表
// @Summary 课程列表
// @Description 按创建时间倒序返回全部课程
// @Tags Course
// @Produce json
// @Success 200 {object} util.Response
// @Router /courses [get]
func (ctl *CourseController) ListCourses(c *gin.Context) {
	util.Success(c, ctl.courseService.List())
}

// GetCourse 课程详情
// @Summary 课程详情
// @Tags Course
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [get]
func (ctl *CourseController) GetCourse(c *gin.Context) {
	course, ok := ctl.courseService.Get(c.Param("id"))
	if !ok {
		util.NotFound(c)
		return
	}
	util.Success(c, course)
}

type createCourseRequest struct {
	Title   string         `json:"title" binding:"required"`
	Outline *model.Outline `json:"outline,omitempty"`
}

// CreateCourse 新建课程
// @Summary 新建课程
// @Description 可选携带 AI 生成的课程骨架，骨架内的模块和课时全部以草稿创建
// @Tags Course
// @Accept json
// @Produce json
// @Param request body createCourseRequest true "标题及可选骨架"
// @Success 201 {object} util.Response
// @Router /courses [post]
func (ctl *CourseController) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.courseService.Create(req.Title, req.Outline)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, course)
}

// ReplaceCourse 整体替换课程
// @Summary 整体替换课程
// @Tags Course
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param request body model.Course true "完整课程树"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [put]
func (ctl *CourseController) ReplaceCourse(c *gin.Context) {
	var course model.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	course.ID = c.Param("id")

	if err := ctl.courseService.Update(course); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, course)
}

// UpdateCourse 更新课程元数据
// @Summary 更新课程元数据
// @Description 部分更新标题、副标题、封面图和发布状态
// @Tags Course
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param request body service.CourseUpdate true "变更字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [patch]
func (ctl *CourseController) UpdateCourse(c *gin.Context) {
	var upd service.CourseUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if upd.Status != nil && *upd.Status != model.StatusDraft && *upd.Status != model.StatusPublished {
		util.BadRequest(c, "invalid course status")
		return
	}

	course, err := ctl.editorService.UpdateCourse(c.Param("id"), upd)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Success(c, course)
}

// DeleteCourse 删除课程
// @Summary 删除课程
// @Description 连同全部模块、课时和内容块一起删除，重复删除幂等
// @Tags Course
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /courses/{id} [delete]
func (ctl *CourseController) DeleteCourse(c *gin.Context) {
	if err := ctl.courseService.Delete(c.Param("id")); err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// respondEditorError 编辑操作错误到 HTTP 状态的统一映射
func respondEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound):
		util.Error(c, http.StatusNotFound, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
