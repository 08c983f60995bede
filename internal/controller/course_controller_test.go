package controller

import (
	"encoding/json"
	"net/http"
	"souschef_backend/internal/model"
	"testing"
)

func TestCreateCourse_HTTP(t *testing.T) {
	f := newFixture(t, "", 0)

	w := f.do(t, "POST", "/api/courses", map[string]string{"title": "New Course"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var course model.Course
	resp := decodeResponse(t, w)
	if err := json.Unmarshal(resp.Data, &course); err != nil {
		t.Fatalf("decode course: %v", err)
	}
	if course.Title != "New Course" || course.Status != model.StatusDraft {
		t.Fatalf("unexpected course: %+v", course)
	}
}

func TestCreateCourse_RequiresTitle(t *testing.T) {
	f := newFixture(t, "", 0)
	w := f.do(t, "POST", "/api/courses", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	f := newFixture(t, "", 0)
	w := f.do(t, "GET", "/api/courses/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateCourse_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t, "", 0)
	c, _ := f.seedLesson(t)

	w := f.do(t, "PATCH", "/api/courses/"+c.ID, map[string]string{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCourse_Publish(t *testing.T) {
	f := newFixture(t, "", 0)
	c, _ := f.seedLesson(t)

	w := f.do(t, "PATCH", "/api/courses/"+c.ID, map[string]string{"status": "published"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got, _ := f.courses.Get(c.ID)
	if got.Status != model.StatusPublished {
		t.Fatalf("status not applied: %q", got.Status)
	}
}

func TestDeleteCourse_HTTP(t *testing.T) {
	f := newFixture(t, "", 0)
	c, _ := f.seedLesson(t)

	if w := f.do(t, "DELETE", "/api/courses/"+c.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := f.do(t, "GET", "/api/courses/"+c.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("course still reachable after delete")
	}
	// 幂等
	if w := f.do(t, "DELETE", "/api/courses/"+c.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("second delete should succeed, got %d", w.Code)
	}
}

func TestAddBlock_RejectsUnknownType(t *testing.T) {
	f := newFixture(t, "", 0)
	c, lesson := f.seedLesson(t)

	w := f.do(t, "POST", "/api/courses/"+c.ID+"/lessons/"+lesson.ID+"/blocks",
		map[string]string{"type": "carousel", "value": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBlockLifecycle_HTTP(t *testing.T) {
	f := newFixture(t, "", 0)
	c, lesson := f.seedLesson(t)
	base := "/api/courses/" + c.ID + "/lessons/" + lesson.ID

	w := f.do(t, "POST", base+"/blocks", map[string]string{"type": "text", "value": "# Body"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add block: %d %s", w.Code, w.Body.String())
	}

	got, _ := f.courses.Get(c.ID)
	l, _ := got.FindLesson(lesson.ID)
	if len(l.Blocks) != 1 {
		t.Fatalf("block not stored")
	}
	blockID := l.Blocks[0].ID

	if w := f.do(t, "DELETE", base+"/blocks/"+blockID, nil); w.Code != http.StatusOK {
		t.Fatalf("remove block: %d", w.Code)
	}
	got, _ = f.courses.Get(c.ID)
	l, _ = got.FindLesson(lesson.ID)
	if len(l.Blocks) != 0 {
		t.Fatalf("block not removed")
	}
}
