package service

import (
	"souschef_backend/internal/config"
	"souschef_backend/internal/model"
	"souschef_backend/internal/util"
	"strings"
)

// ViewerService 分享页的只读投影和邮箱门禁。
// 门禁接受任何非空邮箱，不做验证，只换发一个标记令牌——不是认证机制。
type ViewerService struct {
	courses *CourseService
	cfg     *config.Config
}

func NewViewerService(courses *CourseService, cfg *config.Config) *ViewerService {
	return &ViewerService{courses: courses, cfg: cfg}
}

// CourseSummary 门禁前可见的课程概要，不含正文内容
type CourseSummary struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Thumbnail   string             `json:"thumbnail"`
	Status      model.CourseStatus `json:"status"`
	ModuleCount int                `json:"moduleCount"`
	LessonCount int                `json:"lessonCount"`
}

func (s *ViewerService) Summary(courseID string) (CourseSummary, error) {
	course, ok := s.courses.Get(courseID)
	if !ok {
		return CourseSummary{}, util.ErrCourseNotFound
	}
	return CourseSummary{
		ID:          course.ID,
		Title:       course.Title,
		Subtitle:    course.Subtitle,
		Thumbnail:   course.Thumbnail,
		Status:      course.Status,
		ModuleCount: len(course.Modules),
		LessonCount: course.LessonCount(),
	}, nil
}

// Gate 过门禁：邮箱非空即换发观看令牌
func (s *ViewerService) Gate(courseID, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", util.ErrEmailRequired
	}
	if _, ok := s.courses.Get(courseID); !ok {
		return "", util.ErrCourseNotFound
	}
	return util.GenerateViewerToken(email, courseID, s.cfg.Gate.Secret, s.cfg.Gate.ExpireTime)
}

// View 门禁后的完整只读课程树
func (s *ViewerService) View(courseID string) (model.Course, error) {
	course, ok := s.courses.Get(courseID)
	if !ok {
		return model.Course{}, util.ErrCourseNotFound
	}
	return course, nil
}
