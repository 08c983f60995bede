package controller

import (
	"encoding/json"
	"souschef_backend/internal/model"
	"souschef_backend/internal/service"
	"souschef_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EditorController struct {
	editorService *service.EditorService
}

func NewEditorController(editorService *service.EditorService) *EditorController {
	return &EditorController{editorService: editorService}
}

// AddModule 新增模块
// @Summary 新增模块
// @Description 在课程末尾追加一个默认标题的空模块
// @Tags Editor
// @Produce json
// @Param id path string true "课程ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/modules [post]
func (ctl *EditorController) AddModule(c *gin.Context) {
	course, mod, err := ctl.editorService.AddModule(c.Param("id"))
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Created(c, gin.H{"course": course, "module": mod})
}

type renameModuleRequest struct {
	Title string `json:"title" binding:"required"`
}

// RenameModule 重命名模块
// @Summary 重命名模块
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param moduleId path string true "模块ID"
// @Param request body renameModuleRequest true "新标题"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/modules/{moduleId} [patch]
func (ctl *EditorController) RenameModule(c *gin.Context) {
	var req renameModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.editorService.RenameModule(c.Param("id"), c.Param("moduleId"), req.Title)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Success(c, course)
}

// AddLesson 新增课时
// @Summary 新增课时
// @Description 在模块末尾追加一条草稿课时，标题和描述为默认值
// @Tags Editor
// @Produce json
// @Param id path string true "课程ID"
// @Param moduleId path string true "模块ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/modules/{moduleId}/lessons [post]
func (ctl *EditorController) AddLesson(c *gin.Context) {
	course, lesson, err := ctl.editorService.AddLesson(c.Param("id"), c.Param("moduleId"))
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Created(c, gin.H{"course": course, "lesson": lesson})
}

// UpdateLesson 更新课时
// @Summary 更新课时
// @Description 将给定字段合并进课时，未出现的字段保持原值
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Param request body model.LessonUpdate true "变更字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/lessons/{lessonId} [patch]
func (ctl *EditorController) UpdateLesson(c *gin.Context) {
	var upd model.LessonUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.editorService.UpdateLesson(c.Param("id"), c.Param("lessonId"), upd)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Success(c, course)
}

type addBlockRequest struct {
	Type     model.BlockType `json:"type" binding:"required"`
	Value    string          `json:"value"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// AddBlock 新增内容块
// @Summary 新增内容块
// @Description 向课时末尾追加内容块，metadata 的结构取决于块类型
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Param request body addBlockRequest true "块类型与内容"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/lessons/{lessonId}/blocks [post]
func (ctl *EditorController) AddBlock(c *gin.Context) {
	var req addBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if !req.Type.Valid() {
		util.BadRequest(c, util.ErrInvalidBlockType.Error())
		return
	}

	block, err := model.NewBlock(req.Type, req.Value, req.Metadata)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.editorService.AddBlock(c.Param("id"), c.Param("lessonId"), block)
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Created(c, gin.H{"course": course, "block": block})
}

// RemoveBlock 删除内容块
// @Summary 删除内容块
// @Description 按 id 删除内容块，块不存在时幂等返回成功
// @Tags Editor
// @Produce json
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Param blockId path string true "块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/lessons/{lessonId}/blocks/{blockId} [delete]
func (ctl *EditorController) RemoveBlock(c *gin.Context) {
	course, err := ctl.editorService.RemoveBlock(c.Param("id"), c.Param("lessonId"), c.Param("blockId"))
	if err != nil {
		respondEditorError(c, err)
		return
	}
	util.Success(c, course)
}
