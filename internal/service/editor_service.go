package service

import (
	"souschef_backend/internal/config"
	"souschef_backend/internal/model"
	"souschef_backend/internal/util"
)

// EditorService 树编辑入口。手动编辑和 AI 生成共用这一条变更路径：
// 对当前课程执行纯函数编辑操作，把结果交回 CourseService 持久化。
// 引用了不存在的模块/课时/块 id 时默认静默保持原树不变（与编辑器
// 的乐观更新配合）；打开 strict_missing_ids 后返回对应的 not found 错误。
type EditorService struct {
	courses *CourseService
	strict  bool
}

func NewEditorService(courses *CourseService, cfg *config.Config) *EditorService {
	return &EditorService{courses: courses, strict: cfg.Editor.StrictMissingIDs}
}

// CourseUpdate 课程元数据部分更新
type CourseUpdate struct {
	Title     *string             `json:"title,omitempty"`
	Subtitle  *string             `json:"subtitle,omitempty"`
	Thumbnail *string             `json:"thumbnail,omitempty"`
	Status    *model.CourseStatus `json:"status,omitempty"`
}

func (s *EditorService) UpdateCourse(courseID string, upd CourseUpdate) (model.Course, error) {
	return s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		if upd.Title != nil {
			c.Title = *upd.Title
		}
		if upd.Subtitle != nil {
			c.Subtitle = *upd.Subtitle
		}
		if upd.Thumbnail != nil {
			c.Thumbnail = *upd.Thumbnail
		}
		if upd.Status != nil {
			c.Status = *upd.Status
		}
		return c, nil
	})
}

func (s *EditorService) AddModule(courseID string) (model.Course, model.Module, error) {
	var mod model.Module
	course, err := s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, m := model.AddModule(c)
		mod = m
		return next, nil
	})
	return course, mod, err
}

func (s *EditorService) RenameModule(courseID, moduleID, title string) (model.Course, error) {
	return s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, found := model.RenameModule(c, moduleID, title)
		if !found && s.strict {
			return c, util.ErrModuleNotFound
		}
		return next, nil
	})
}

func (s *EditorService) AddLesson(courseID, moduleID string) (model.Course, model.Lesson, error) {
	var lesson model.Lesson
	course, err := s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, l, found := model.AddLesson(c, moduleID)
		if !found && s.strict {
			return c, util.ErrModuleNotFound
		}
		lesson = l
		return next, nil
	})
	return course, lesson, err
}

func (s *EditorService) UpdateLesson(courseID, lessonID string, upd model.LessonUpdate) (model.Course, error) {
	return s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, found := model.UpdateLesson(c, lessonID, upd)
		if !found && s.strict {
			return c, util.ErrLessonNotFound
		}
		return next, nil
	})
}

func (s *EditorService) AddBlock(courseID, lessonID string, block model.ContentBlock) (model.Course, error) {
	return s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, found := model.AddBlock(c, lessonID, block)
		if !found && s.strict {
			return c, util.ErrLessonNotFound
		}
		return next, nil
	})
}

func (s *EditorService) RemoveBlock(courseID, lessonID, blockID string) (model.Course, error) {
	return s.courses.Apply(courseID, func(c model.Course) (model.Course, error) {
		next, found := model.RemoveBlock(c, lessonID, blockID)
		if !found && s.strict {
			return c, util.ErrLessonNotFound
		}
		return next, nil
	})
}
