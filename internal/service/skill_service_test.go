package service

import (
	"context"
	"errors"
	"testing"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/util"

	"go.uber.org/zap"
)

func newSkillService(env *testEnv) *SkillService {
	return NewSkillService(env.skills, env.progress, nil, zap.NewNop())
}

func TestListForUserDerivesStates(t *testing.T) {
	env := newTestEnv(t)
	svc := newSkillService(env)
	user := env.mustCreateUser(t, "states@test.io")

	env.mustCreateSkill(t, "html", "HTML", "Web", nil, 100)
	env.mustCreateSkill(t, "css", "CSS", "Web", []string{"html"}, 150)
	env.mustCreateSkill(t, "react", "React", "Web", []string{"css"}, 300)

	skills, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	states := make(map[string]model.SkillStatus, len(skills))
	for _, s := range skills {
		states[s.ID] = s.Status
	}

	if states["html"] != model.StatusAvailable {
		t.Errorf("html = %s, want available", states["html"])
	}
	if states["css"] != model.StatusLocked {
		t.Errorf("css = %s, want locked", states["css"])
	}
	if states["react"] != model.StatusLocked {
		t.Errorf("react = %s, want locked", states["react"])
	}

	// 完成 html 之后 css 解锁，react 仍锁定（只查直接前置）
	if _, err := env.progression.Start(user.ID, "html"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.progression.CompleteSkill(user.ID, "html"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	skills, err = svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	for _, s := range skills {
		states[s.ID] = s.Status
	}
	if states["html"] != model.StatusCompleted {
		t.Errorf("html = %s, want completed", states["html"])
	}
	if states["css"] != model.StatusAvailable {
		t.Errorf("css = %s, want available", states["css"])
	}
	if states["react"] != model.StatusLocked {
		t.Errorf("react = %s, want locked", states["react"])
	}
}

func TestListForUserCarriesProgressPercent(t *testing.T) {
	env := newTestEnv(t)
	svc := newSkillService(env)
	user := env.mustCreateUser(t, "percent@test.io")
	env.mustCreateSkill(t, "s1", "HTML", "Web", nil, 100)

	if _, err := env.progression.Start(user.ID, "s1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.progression.SetProgress(user.ID, "s1", 40); err != nil {
		t.Fatalf("set progress: %v", err)
	}

	skills, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("skills = %d, want 1", len(skills))
	}
	if skills[0].ProgressPercent != 40 {
		t.Errorf("progress = %d, want 40", skills[0].ProgressPercent)
	}
	if skills[0].Status != model.StatusInProgress {
		t.Errorf("status = %s, want in_progress", skills[0].Status)
	}
}

func TestSkillServiceGetByID(t *testing.T) {
	env := newTestEnv(t)
	svc := newSkillService(env)
	env.mustCreateSkill(t, "s1", "HTML", "Web", nil, 100)

	skill, err := svc.GetByID("s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if skill.Name != "HTML" {
		t.Errorf("name = %s", skill.Name)
	}

	if _, err := svc.GetByID("missing"); !errors.Is(err, util.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestSkillServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := newSkillService(env)
	env.mustCreateSkill(t, "s1", "HTML", "Web", nil, 100)

	if err := svc.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "s1"); !errors.Is(err, util.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
