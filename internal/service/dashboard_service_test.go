package service

import (
	"testing"
	"time"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.skills, env.progress)
	user := env.mustCreateUser(t, "stats@test.io")

	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		env.mustCreateSkill(t, id, "Skill "+id, "Web", nil, 100)
	}

	now := time.Now()
	completeSkillAt(t, env, user.ID, "s1", now)
	if _, err := env.progression.Start(user.ID, "s2"); err != nil {
		t.Fatalf("start: %v", err)
	}

	user.XP = 1200
	user.Level = 2

	stats, err := svc.Stats(user)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalXP != 1200 || stats.Level != 2 {
		t.Errorf("xp=%d level=%d, want 1200/2", stats.TotalXP, stats.Level)
	}
	if stats.SkillsCompleted != 1 {
		t.Errorf("completed = %d, want 1", stats.SkillsCompleted)
	}
	if stats.SkillsInProgress != 1 {
		t.Errorf("in progress = %d, want 1", stats.SkillsInProgress)
	}
	if stats.TotalSkills != 4 {
		t.Errorf("total = %d, want 4", stats.TotalSkills)
	}
	// 1/4 = 25.0
	if stats.CompletionRate != 25.0 {
		t.Errorf("completion rate = %v, want 25.0", stats.CompletionRate)
	}
}

func TestDashboardStatsEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.skills, env.progress)
	user := env.mustCreateUser(t, "empty-stats@test.io")

	stats, err := svc.Stats(user)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSkills != 0 || stats.CompletionRate != 0 {
		t.Errorf("stats = %+v, want zero totals", stats)
	}
}
