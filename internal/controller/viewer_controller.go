package controller

import (
	"errors"
	"net/http"
	"souschef_backend/internal/service"
	"souschef_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ViewerController struct {
	viewerService *service.ViewerService
}

func NewViewerController(viewerService *service.ViewerService) *ViewerController {
	return &ViewerController{viewerService: viewerService}
}

// Summary 课程概要
// @Summary 课程概要
// @Description 门禁前可见的分享页概要，不含正文内容
// @Tags Viewer
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /view/{id}/summary [get]
func (ctl *ViewerController) Summary(c *gin.Context) {
	summary, err := ctl.viewerService.Summary(c.Param("id"))
	if err != nil {
		util.NotFound(c)
		return
	}
	util.Success(c, summary)
}

type gateRequest struct {
	Email string `json:"email" binding:"required"`
}

// Gate 过邮箱门禁
// @Summary 过邮箱门禁
// @Description 任意非空邮箱均可通过，换发观看令牌；不做邮箱验证，不是认证机制
// @Tags Viewer
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param request body gateRequest true "访客邮箱"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /view/{id}/gate [post]
func (ctl *ViewerController) Gate(c *gin.Context) {
	var req gateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, err := ctl.viewerService.Gate(c.Param("id"), req.Email)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(c)
			return
		}
		if errors.Is(err, util.ErrEmailRequired) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"token": token})
}

// View 只读课程树
// @Summary 只读课程树
// @Description 门禁后的完整课程内容
// @Tags Viewer
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /view/{id} [get]
func (ctl *ViewerController) View(c *gin.Context) {
	viewer := util.GetViewerFromContext(c)
	if viewer == nil || viewer.CourseID != c.Param("id") {
		util.Error(c, http.StatusUnauthorized, "gate token does not match this course")
		return
	}

	course, err := ctl.viewerService.View(c.Param("id"))
	if err != nil {
		util.NotFound(c)
		return
	}
	util.Success(c, course)
}
