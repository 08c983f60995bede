package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Outline AI 生成的课程骨架
type Outline struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Modules  []OutlineModule `json:"modules"`
}

type OutlineModule struct {
	Title   string          `json:"title"`
	Lessons []OutlineLesson `json:"lessons"`
}

type OutlineLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseFromOutline 按骨架物化课程：全部节点分配新 id，课时均为草稿。
// outline 为 nil 时等价于 NewCourse。
func CourseFromOutline(title string, outline *Outline) Course {
	if outline == nil {
		return NewCourse(title)
	}

	id := uuid.NewString()
	course := Course{
		ID:        id,
		Title:     outline.Title,
		Subtitle:  outline.Subtitle,
		Thumbnail: fmt.Sprintf(thumbnailURLPattern, id),
		Status:    StatusDraft,
		Modules:   make([]Module, 0, len(outline.Modules)),
	}
	if course.Title == "" {
		course.Title = title
	}
	if course.Subtitle == "" {
		course.Subtitle = DefaultSubtitle
	}

	for _, om := range outline.Modules {
		mod := Module{
			ID:      uuid.NewString(),
			Title:   om.Title,
			Lessons: make([]Lesson, 0, len(om.Lessons)),
		}
		for _, ol := range om.Lessons {
			mod.Lessons = append(mod.Lessons, Lesson{
				ID:          uuid.NewString(),
				Title:       ol.Title,
				Description: ol.Description,
				Blocks:      []ContentBlock{},
				IsDraft:     true,
			})
		}
		course.Modules = append(course.Modules, mod)
	}

	return course
}
