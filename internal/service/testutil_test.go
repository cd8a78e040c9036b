package service

import (
	"testing"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Lesson{},
		&model.SkillProgress{},
		&model.LessonProgress{},
		&model.Session{},
		&model.Connection{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	skills      *repository.SkillRepository
	lessons     *repository.LessonRepository
	progress    *repository.SkillProgressRepository
	lessonProg  *repository.LessonProgressRepository
	sessions    *repository.SessionRepository
	connections *repository.ConnectionRepository
	progression *ProgressionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		skills:      repository.NewSkillRepository(db),
		lessons:     repository.NewLessonRepository(db),
		progress:    repository.NewSkillProgressRepository(db),
		lessonProg:  repository.NewLessonProgressRepository(db),
		sessions:    repository.NewSessionRepository(db),
		connections: repository.NewConnectionRepository(db),
	}
	env.progression = NewProgressionService(
		env.skills, env.lessons, env.progress, env.lessonProg, env.users,
		false, zap.NewNop(),
	)
	return env
}

func (e *testEnv) mustCreateUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, XP: 0, Level: 1}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) mustCreateSkill(t *testing.T, id, name, category string, prereqs []string, xp int) *model.Skill {
	t.Helper()
	skill := &model.Skill{
		Name:          name,
		Category:      category,
		Difficulty:    model.Beginner,
		Prerequisites: prereqs,
		XPValue:       xp,
	}
	skill.ID = id
	if err := e.skills.Create(skill); err != nil {
		t.Fatalf("create skill %s: %v", id, err)
	}
	return skill
}

func (e *testEnv) mustCreateLesson(t *testing.T, id, skillID string, order int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{SkillID: skillID, Title: "Lesson " + id, Order: order, EstimatedTime: 10}
	lesson.ID = id
	if err := e.lessons.Create(lesson); err != nil {
		t.Fatalf("create lesson %s: %v", id, err)
	}
	return lesson
}
