package model

import (
	"fmt"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	StatusDraft     CourseStatus = "draft"
	StatusPublished CourseStatus = "published"
)

const (
	DefaultModuleTitle  = "New Module"
	DefaultLessonTitle  = "New Lesson"
	DefaultLessonDesc   = "Lesson summary..."
	DefaultSubtitle     = "No description provided."
	thumbnailURLPattern = "https://picsum.photos/seed/%s/1000/700"
)

type Lesson struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Blocks      []ContentBlock `json:"blocks"`
	IsDraft     bool           `json:"isDraft"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Course struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Thumbnail string       `json:"thumbnail"`
	Status    CourseStatus `json:"status"`
	Modules   []Module     `json:"modules"`
}

// NewCourse 创建空课程，状态为草稿
func NewCourse(title string) Course {
	id := uuid.NewString()
	return Course{
		ID:        id,
		Title:     title,
		Subtitle:  DefaultSubtitle,
		Thumbnail: fmt.Sprintf(thumbnailURLPattern, id),
		Status:    StatusDraft,
		Modules:   []Module{},
	}
}

func NewModule() Module {
	return Module{ID: uuid.NewString(), Title: DefaultModuleTitle, Lessons: []Lesson{}}
}

func NewLesson() Lesson {
	return Lesson{
		ID:          uuid.NewString(),
		Title:       DefaultLessonTitle,
		Description: DefaultLessonDesc,
		Blocks:      []ContentBlock{},
		IsDraft:     true,
	}
}

func (l Lesson) Clone() Lesson {
	out := l
	out.Blocks = make([]ContentBlock, len(l.Blocks))
	for i, b := range l.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

func (m Module) Clone() Module {
	out := m
	out.Lessons = make([]Lesson, len(m.Lessons))
	for i, l := range m.Lessons {
		out.Lessons[i] = l.Clone()
	}
	return out
}

func (c Course) Clone() Course {
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		out.Modules[i] = m.Clone()
	}
	return out
}

// FindLesson 在全部模块中按 id 查找课时
func (c Course) FindLesson(lessonID string) (Lesson, bool) {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return l, true
			}
		}
	}
	return Lesson{}, false
}

func (c Course) FindModule(moduleID string) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == moduleID {
			return m, true
		}
	}
	return Module{}, false
}

// LessonCount 课程内课时总数
func (c Course) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// SeedCourse 内置示例课程，持久化数据缺失或损坏时兜底
func SeedCourse() Course {
	return Course{
		ID:        uuid.NewString(),
		Title:     "Minimalist UX Foundations",
		Subtitle:  "Learn the art of subtraction in digital interface design.",
		Thumbnail: "https://picsum.photos/seed/design/1000/700",
		Status:    StatusPublished,
		Modules: []Module{
			{
				ID:    uuid.NewString(),
				Title: "The Philosophy",
				Lessons: []Lesson{
					{
						ID:          uuid.NewString(),
						Title:       "Why Less is More",
						Description: "Exploring the history of minimalism",
						Blocks:      []ContentBlock{},
					},
					{
						ID:          uuid.NewString(),
						Title:       "Visual Hierarchy",
						Description: "Guiding the eye with white space",
						Blocks:      []ContentBlock{},
					},
				},
			},
		},
	}
}
