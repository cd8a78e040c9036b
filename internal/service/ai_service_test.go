package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/util"
)

func newChatStub(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing api key header")
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) < 2 {
			t.Errorf("expected system+user messages, got %d", len(req.Messages))
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newAIService(env *testEnv, baseURL string) *AIService {
	cfg := config.AIConfig{BaseURL: baseURL, APIKey: "test-key", Model: "gpt-4o-mini"}
	return NewAIService(cfg, env.skills, env.lessons, env.progress)
}

func TestRecommendSkills(t *testing.T) {
	env := newTestEnv(t)
	stub := newChatStub(t, `[{"skill_name":"CSS","reason":"natural next step"}]`)
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	user := env.mustCreateUser(t, "recommend@test.io")
	env.mustCreateSkill(t, "html", "HTML", "Web", nil, 100)
	env.mustCreateSkill(t, "css", "CSS", "Web", []string{"html"}, 150)
	if _, err := env.progression.Start(user.ID, "html"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.progression.CompleteSkill(user.ID, "html"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	result, err := svc.RecommendSkills(user.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if result.Recommendations == "" {
		t.Error("empty recommendations")
	}
	if len(result.CompletedSkills) != 1 || result.CompletedSkills[0] != "HTML" {
		t.Errorf("completed skills = %v, want [HTML]", result.CompletedSkills)
	}
}

func TestGenerateLessonContent(t *testing.T) {
	env := newTestEnv(t)
	stub := newChatStub(t, "# Flexbox\nLesson body here.")
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	content, err := svc.GenerateLessonContent("CSS", "Flexbox")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if content == "" {
		t.Error("empty content")
	}
}

func TestGenerateLessonsPersistsWithOrder(t *testing.T) {
	env := newTestEnv(t)
	payload := "```json\n" + `[
		{"title":"Intro","content":"body 1","estimated_time":15,"resources":[{"title":"MDN","url":"https://developer.mozilla.org"}]},
		{"title":"Deep Dive","content":"body 2","estimated_time":30,"resources":[]}
	]` + "\n```"
	stub := newChatStub(t, payload)
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	env.mustCreateSkill(t, "s1", "CSS", "Web", nil, 150)
	env.mustCreateLesson(t, "l1", "s1", 1)

	result, err := svc.GenerateLessons(LessonGenerationInput{SkillID: "s1", Count: 2})
	if err != nil {
		t.Fatalf("generate lessons: %v", err)
	}
	if result.SkillID != "s1" {
		t.Errorf("skill id = %s, want s1", result.SkillID)
	}
	lessons := result.Lessons
	if len(lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(lessons))
	}
	// order 接在已有课程之后
	if lessons[0].Order != 2 || lessons[1].Order != 3 {
		t.Errorf("orders = %d,%d, want 2,3", lessons[0].Order, lessons[1].Order)
	}
	if len(lessons[0].Resources) != 1 || lessons[0].Resources[0].URL == "" {
		t.Errorf("resources not carried over: %+v", lessons[0].Resources)
	}

	stored, err := env.lessons.FindBySkillID("s1")
	if err != nil {
		t.Fatalf("reload lessons: %v", err)
	}
	if len(stored) != 3 {
		t.Errorf("stored lessons = %d, want 3", len(stored))
	}
}

func TestGenerateLessonsUnparseablePayload(t *testing.T) {
	env := newTestEnv(t)
	stub := newChatStub(t, "Sorry, I cannot produce JSON today.")
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	env.mustCreateSkill(t, "s1", "CSS", "Web", nil, 150)

	_, err := svc.GenerateLessons(LessonGenerationInput{SkillID: "s1", Count: 2})
	if !util.IsDependencyError(err) {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// 失败不落库
	stored, err2 := env.lessons.FindBySkillID("s1")
	if err2 != nil {
		t.Fatalf("reload lessons: %v", err2)
	}
	if len(stored) != 0 {
		t.Errorf("stored lessons = %d, want 0", len(stored))
	}
}

func TestGenerateLessonsCreatesNewSkill(t *testing.T) {
	env := newTestEnv(t)
	payload := `[{"title":"Strategies","content":"body","estimated_time":20,"resources":[]}]`
	stub := newChatStub(t, payload)
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	result, err := svc.GenerateLessons(LessonGenerationInput{
		NewSkillName:     "Advanced Testing",
		NewSkillCategory: "Quality Assurance",
		Topic:            "Automated Testing Strategies",
		XPPoints:         150,
		Count:            1,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.SkillID == "" {
		t.Fatal("new skill id missing")
	}

	skill, err := env.skills.FindByID(result.SkillID)
	if err != nil {
		t.Fatalf("reload skill: %v", err)
	}
	if skill.Name != "Advanced Testing" || skill.Category != "Quality Assurance" || skill.XPValue != 150 {
		t.Errorf("unexpected skill: %+v", skill)
	}
	if len(result.Lessons) != 1 || result.Lessons[0].SkillID != result.SkillID {
		t.Errorf("lessons not attached to new skill: %+v", result.Lessons)
	}
}

func TestGenerateLessonsUnknownSkill(t *testing.T) {
	env := newTestEnv(t)
	stub := newChatStub(t, "[]")
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	if _, err := svc.GenerateLessons(LessonGenerationInput{SkillID: "ghost"}); !errors.Is(err, util.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if _, err := svc.GenerateLessons(LessonGenerationInput{}); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer stub.Close()
	svc := newAIService(env, stub.URL)

	_, err := svc.Chat("system", "prompt")
	if !util.IsDependencyError(err) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
