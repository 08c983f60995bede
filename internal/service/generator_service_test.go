package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"souschef_backend/internal/config"
	"souschef_backend/internal/util"
	"strings"
	"testing"
)

func newGenerator(t *testing.T, reply string, aiCfg config.AIConfig) *GeneratorService {
	t.Helper()
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(reply)))
	})
	return NewGeneratorService(ai, aiCfg, nil)
}

func TestGenerateOutline_ParsesFencedResponse(t *testing.T) {
	reply := "```json\n" + `{
		"title": "Mastering Sourdough",
		"subtitle": "Flour, water, patience",
		"modules": [
			{"title": "The Starter", "lessons": [
				{"title": "Feeding Schedules", "description": "Keeping the culture alive"}
			]}
		]
	}` + "\n```"
	g := newGenerator(t, reply, config.AIConfig{})

	outline, err := g.GenerateOutline(context.Background(), "sourdough baking")
	if err != nil {
		t.Fatalf("generate outline: %v", err)
	}
	if outline.Title != "Mastering Sourdough" || len(outline.Modules) != 1 {
		t.Fatalf("outline not parsed: %+v", outline)
	}
	if outline.Modules[0].Lessons[0].Title != "Feeding Schedules" {
		t.Fatalf("lessons lost: %+v", outline.Modules[0])
	}
}

func TestGenerateOutline_RejectsInvalidJSON(t *testing.T) {
	g := newGenerator(t, "Sorry, I cannot do that.", config.AIConfig{})
	if _, err := g.GenerateOutline(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
}

func TestGenerateOutline_RejectsEmptyModules(t *testing.T) {
	g := newGenerator(t, `{"title":"t","subtitle":"s","modules":[]}`, config.AIConfig{})
	if _, err := g.GenerateOutline(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for empty modules")
	}
}

func TestGenerateLessonContent_RejectsEmpty(t *testing.T) {
	g := newGenerator(t, "", config.AIConfig{})
	if _, err := g.GenerateLessonContent(context.Background(), "L", "C"); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestGenerateLessonContent_ReturnsMarkdown(t *testing.T) {
	g := newGenerator(t, "# Lesson\n\nBody text.", config.AIConfig{})
	out, err := g.GenerateLessonContent(context.Background(), "L", "C")
	if err != nil {
		t.Fatalf("generate content: %v", err)
	}
	if !strings.HasPrefix(out, "# Lesson") {
		t.Fatalf("unexpected content %q", out)
	}
}

func TestGenerateQuiz_AcceptsWrappedQuestions(t *testing.T) {
	reply := `{"questions":[
		{"question":"Q1","options":["a","b","c","d"],"correctAnswer":2},
		{"question":"Q2","options":["a","b","c","d"],"correctAnswer":0}
	]}`
	g := newGenerator(t, reply, config.AIConfig{})

	questions, err := g.GenerateQuiz(context.Background(), "L", "content")
	if err != nil {
		t.Fatalf("generate quiz: %v", err)
	}
	if len(questions) != 2 || questions[0].CorrectAnswer != 2 {
		t.Fatalf("questions not parsed: %+v", questions)
	}
}

func TestGenerateQuiz_WrongOptionCountFailsWhole(t *testing.T) {
	reply := `{"questions":[
		{"question":"ok","options":["a","b","c","d"],"correctAnswer":1},
		{"question":"bad","options":["a","b"],"correctAnswer":0}
	]}`
	g := newGenerator(t, reply, config.AIConfig{})
	if _, err := g.GenerateQuiz(context.Background(), "L", "content"); err == nil {
		t.Fatalf("one malformed question should fail the whole quiz")
	}
}

func TestGenerateQuiz_TruncatesLongContent(t *testing.T) {
	var sentPrompt string
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 2 {
			sentPrompt = req.Messages[1].Content
		}
		w.Write([]byte(chatReply(`[{"question":"Q","options":["a","b","c","d"],"correctAnswer":0}]`)))
	})
	g := NewGeneratorService(ai, config.AIConfig{}, nil)

	long := strings.Repeat("#", maxQuizSourceLen+500)
	if _, err := g.GenerateQuiz(context.Background(), "L", long); err != nil {
		t.Fatalf("generate quiz: %v", err)
	}
	if strings.Count(sentPrompt, "#") > maxQuizSourceLen {
		t.Fatalf("content not truncated before sending")
	}
}

func TestParseQuizQuestions_BareArray(t *testing.T) {
	questions, err := parseQuizQuestions(`[{"question":"Q","options":["a","b","c","d"],"correctAnswer":3}]`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectAnswer != 3 {
		t.Fatalf("bare array not accepted: %+v", questions)
	}
}

func TestParseQuizQuestions_OutOfRangeAnswer(t *testing.T) {
	if _, err := parseQuizQuestions(`[{"question":"Q","options":["a","b","c","d"],"correctAnswer":4}]`); err == nil {
		t.Fatalf("expected error for out-of-range correctAnswer")
	}
}

func TestAcquireLesson_SerializesPerLesson(t *testing.T) {
	g := NewGeneratorService(nil, config.AIConfig{SerializePerLesson: true}, nil)

	release, err := g.AcquireLesson("lesson-1")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := g.AcquireLesson("lesson-1"); !errors.Is(err, util.ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	// 其他课时不受影响
	otherRelease, err := g.AcquireLesson("lesson-2")
	if err != nil {
		t.Fatalf("other lesson blocked: %v", err)
	}
	otherRelease()

	release()
	release2, err := g.AcquireLesson("lesson-1")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	release2()
}

func TestAcquireLesson_DisabledAlwaysSucceeds(t *testing.T) {
	g := NewGeneratorService(nil, config.AIConfig{SerializePerLesson: false}, nil)
	r1, err1 := g.AcquireLesson("l")
	r2, err2 := g.AcquireLesson("l")
	if err1 != nil || err2 != nil {
		t.Fatalf("disabled guard should never block: %v %v", err1, err2)
	}
	r1()
	r2()
}
