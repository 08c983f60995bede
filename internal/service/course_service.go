package service

import (
	"encoding/json"
	"souschef_backend/internal/model"
	"souschef_backend/internal/repository"
	"souschef_backend/internal/util"
	"souschef_backend/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

// CourseService 持有内存中的课程库并负责快照持久化。
// 所有变更都经由本服务串行执行：读改写在锁内完成，
// 每次成功的 Create/Update/Delete 之后都会落盘全量快照。
// 返回的 Course 值在约定上是只读的，编辑操作总是整体替换而不是原地修改。
type CourseService struct {
	repo *repository.SnapshotRepository

	mu      sync.Mutex
	courses []model.Course
}

func NewCourseService(repo *repository.SnapshotRepository) *CourseService {
	s := &CourseService{repo: repo}
	s.hydrate()
	return s
}

// hydrate 启动时从快照恢复。快照缺失或损坏时落回内置种子课程，
// 不向用户暴露错误。
func (s *CourseService) hydrate() {
	payload, ok, err := s.repo.Load()
	if err != nil {
		logger.Log.Error("failed to load course snapshot", zap.Error(err))
	}

	if ok && err == nil {
		var courses []model.Course
		if jsonErr := json.Unmarshal([]byte(payload), &courses); jsonErr == nil {
			s.courses = courses
			return
		}
		logger.Log.Warn("course snapshot is corrupt, falling back to seed data")
	}

	s.courses = []model.Course{model.SeedCourse()}
	if err := s.persistLocked(); err != nil {
		logger.Log.Error("failed to persist seed courses", zap.Error(err))
	}
}

func (s *CourseService) persistLocked() error {
	raw, err := json.Marshal(s.courses)
	if err != nil {
		return err
	}
	return s.repo.Save(string(raw))
}

// List 按持久化顺序返回全部课程，最新创建的在最前
func (s *CourseService) List() []model.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s *CourseService) Get(id string) (model.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return model.Course{}, false
}

// Create 新建课程。提供骨架时按骨架物化模块和课时，否则创建空课程。
func (s *CourseService) Create(title string, outline *model.Outline) (model.Course, error) {
	course := model.CourseFromOutline(title, outline)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append([]model.Course{course}, s.courses...)
	if err := s.persistLocked(); err != nil {
		s.courses = s.courses[1:]
		return model.Course{}, err
	}
	return course, nil
}

// Update 整体替换 id 匹配的课程
func (s *CourseService) Update(course model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.courses {
		if c.ID == course.ID {
			prev := s.courses[i]
			s.courses[i] = course
			if err := s.persistLocked(); err != nil {
				s.courses[i] = prev
				return err
			}
			return nil
		}
	}
	return util.ErrCourseNotFound
}

// Delete 删除课程及其全部后代，重复删除是幂等的
func (s *CourseService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.courses {
		if c.ID == id {
			prev := s.courses
			s.courses = append(append([]model.Course{}, s.courses[:i]...), s.courses[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.courses = prev
				return err
			}
			return nil
		}
	}
	return nil
}

// Apply 在锁内对课程执行一次读改写并持久化结果。
// fn 返回的错误会原样透出且不落盘，保证失败时树保持不变。
func (s *CourseService) Apply(courseID string, fn func(model.Course) (model.Course, error)) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.courses {
		if c.ID == courseID {
			next, err := fn(c)
			if err != nil {
				return model.Course{}, err
			}
			prev := s.courses[i]
			s.courses[i] = next
			if err := s.persistLocked(); err != nil {
				s.courses[i] = prev
				return model.Course{}, err
			}
			return next, nil
		}
	}
	return model.Course{}, util.ErrCourseNotFound
}
