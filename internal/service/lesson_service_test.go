package service

import (
	"errors"
	"testing"

	"skilltree_backend/internal/util"
)

func TestLessonListOrderAndCompletion(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLessonService(env.skills, env.lessons, env.lessonProg)
	user := env.mustCreateUser(t, "lessons@test.io")

	env.mustCreateSkill(t, "s1", "HTML", "Web", nil, 100)
	env.mustCreateLesson(t, "l3", "s1", 3)
	env.mustCreateLesson(t, "l1", "s1", 1)
	env.mustCreateLesson(t, "l2", "s1", 2)

	if _, err := env.progression.CompleteLesson(user.ID, "l2"); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	lessons, err := svc.ListForUser(user.ID, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("lessons = %d, want 3", len(lessons))
	}
	for i, wantID := range []string{"l1", "l2", "l3"} {
		if lessons[i].ID != wantID {
			t.Errorf("position %d = %s, want %s", i, lessons[i].ID, wantID)
		}
	}
	if lessons[0].Completed || !lessons[1].Completed || lessons[2].Completed {
		t.Errorf("completion flags wrong: %v %v %v", lessons[0].Completed, lessons[1].Completed, lessons[2].Completed)
	}
}

func TestLessonListUnknownSkill(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLessonService(env.skills, env.lessons, env.lessonProg)
	user := env.mustCreateUser(t, "noskill@test.io")

	_, err := svc.ListForUser(user.ID, "ghost")
	if !errors.Is(err, util.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
