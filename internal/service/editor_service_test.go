package service

import (
	"errors"
	"souschef_backend/internal/config"
	"souschef_backend/internal/model"
	"souschef_backend/internal/util"
	"testing"
)

func newEditorFixture(t *testing.T, strict bool) (*CourseService, *EditorService, model.Course) {
	t.Helper()
	repo := newTestRepo(t)
	courses := NewCourseService(repo)
	cfg := testConfig()
	cfg.Editor = config.EditorConfig{StrictMissingIDs: strict}
	editor := NewEditorService(courses, cfg)

	c, err := courses.Create("Fixture", &model.Outline{
		Title: "Fixture",
		Modules: []model.OutlineModule{
			{Title: "M1", Lessons: []model.OutlineLesson{
				{Title: "L1", Description: "d1"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	return courses, editor, c
}

func TestEditorService_UpdateCoursePartial(t *testing.T) {
	courses, editor, c := newEditorFixture(t, false)

	title := "Renamed"
	status := model.StatusPublished
	out, err := editor.UpdateCourse(c.ID, CourseUpdate{Title: &title, Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Title != "Renamed" || out.Status != model.StatusPublished {
		t.Fatalf("fields not applied: %+v", out)
	}
	if out.Subtitle != c.Subtitle {
		t.Fatalf("untouched field changed")
	}

	got, _ := courses.Get(c.ID)
	if got.Title != "Renamed" {
		t.Fatalf("change not visible through course service")
	}
}

func TestEditorService_AddModuleAndLessonPersist(t *testing.T) {
	courses, editor, c := newEditorFixture(t, false)

	_, mod, err := editor.AddModule(c.ID)
	if err != nil {
		t.Fatalf("add module: %v", err)
	}
	_, lesson, err := editor.AddLesson(c.ID, mod.ID)
	if err != nil {
		t.Fatalf("add lesson: %v", err)
	}

	got, _ := courses.Get(c.ID)
	if _, ok := got.FindModule(mod.ID); !ok {
		t.Fatalf("module not persisted")
	}
	if _, ok := got.FindLesson(lesson.ID); !ok {
		t.Fatalf("lesson not persisted")
	}
}

func TestEditorService_SilentModeIgnoresMissingIDs(t *testing.T) {
	courses, editor, c := newEditorFixture(t, false)

	if _, err := editor.RenameModule(c.ID, "missing-module", "X"); err != nil {
		t.Fatalf("silent mode should not error, got %v", err)
	}
	if _, err := editor.AddBlock(c.ID, "missing-lesson", model.NewTextBlock("x")); err != nil {
		t.Fatalf("silent mode should not error, got %v", err)
	}

	got, _ := courses.Get(c.ID)
	if got.Modules[0].Title != "M1" {
		t.Fatalf("course changed on silent miss")
	}
}

func TestEditorService_StrictModeReportsMissingIDs(t *testing.T) {
	_, editor, c := newEditorFixture(t, true)

	if _, err := editor.RenameModule(c.ID, "missing-module", "X"); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	if _, _, err := editor.AddLesson(c.ID, "missing-module"); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	if _, err := editor.UpdateLesson(c.ID, "missing-lesson", model.LessonUpdate{}); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
	if _, err := editor.RemoveBlock(c.ID, "missing-lesson", "b"); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestEditorService_BlockLifecycle(t *testing.T) {
	courses, editor, c := newEditorFixture(t, false)
	lessonID := c.Modules[0].Lessons[0].ID

	block := model.NewTextBlock("# Body")
	if _, err := editor.AddBlock(c.ID, lessonID, block); err != nil {
		t.Fatalf("add block: %v", err)
	}

	got, _ := courses.Get(c.ID)
	lesson, _ := got.FindLesson(lessonID)
	if len(lesson.Blocks) != 1 || lesson.Blocks[0].ID != block.ID {
		t.Fatalf("block not added")
	}

	if _, err := editor.RemoveBlock(c.ID, lessonID, block.ID); err != nil {
		t.Fatalf("remove block: %v", err)
	}
	got, _ = courses.Get(c.ID)
	lesson, _ = got.FindLesson(lessonID)
	if len(lesson.Blocks) != 0 {
		t.Fatalf("block not removed")
	}
}

func TestEditorService_UnknownCourse(t *testing.T) {
	_, editor, _ := newEditorFixture(t, false)
	if _, _, err := editor.AddModule("nope"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
