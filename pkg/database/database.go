package database

import (
	"fmt"
	"log"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

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
		return nil, err
	}

	log.Println("Database migration completed")

	if _, err := SeedSkillTree(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedSkillTree 首次启动时写入默认技能树和课程。
// 技能表非空时跳过，返回本次是否写入。
func SeedSkillTree(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&model.Skill{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	skills := []model.Skill{
		{UUIDBase: model.UUIDBase{ID: "skill-1"}, Name: "HTML Basics", Description: "Learn the fundamentals of HTML", Category: "Web Development", Difficulty: model.Beginner, Prerequisites: []string{}, XPValue: 100, Icon: "Code", Position: model.Position{X: 0, Y: 0}},
		{UUIDBase: model.UUIDBase{ID: "skill-2"}, Name: "CSS Fundamentals", Description: "Master styling with CSS", Category: "Web Development", Difficulty: model.Beginner, Prerequisites: []string{"skill-1"}, XPValue: 150, Icon: "Palette", Position: model.Position{X: 1, Y: 0}},
		{UUIDBase: model.UUIDBase{ID: "skill-3"}, Name: "JavaScript Basics", Description: "Introduction to JavaScript programming", Category: "Programming", Difficulty: model.Beginner, Prerequisites: []string{"skill-1"}, XPValue: 200, Icon: "Code2", Position: model.Position{X: 0, Y: 1}},
		{UUIDBase: model.UUIDBase{ID: "skill-4"}, Name: "React Fundamentals", Description: "Build UIs with React", Category: "Web Development", Difficulty: model.Intermediate, Prerequisites: []string{"skill-2", "skill-3"}, XPValue: 300, Icon: "Component", Position: model.Position{X: 1, Y: 1}},
		{UUIDBase: model.UUIDBase{ID: "skill-5"}, Name: "Python Basics", Description: "Learn Python programming", Category: "Programming", Difficulty: model.Beginner, Prerequisites: []string{}, XPValue: 200, Icon: "Code", Position: model.Position{X: 2, Y: 0}},
		{UUIDBase: model.UUIDBase{ID: "skill-6"}, Name: "Go Web Services", Description: "Build APIs with Go", Category: "Backend", Difficulty: model.Intermediate, Prerequisites: []string{"skill-5"}, XPValue: 300, Icon: "Server", Position: model.Position{X: 2, Y: 1}},
		{UUIDBase: model.UUIDBase{ID: "skill-7"}, Name: "MySQL", Description: "Relational database fundamentals", Category: "Database", Difficulty: model.Intermediate, Prerequisites: []string{"skill-5"}, XPValue: 250, Icon: "Database", Position: model.Position{X: 3, Y: 1}},
		{UUIDBase: model.UUIDBase{ID: "skill-8"}, Name: "Full-Stack Project", Description: "Build a complete application", Category: "Project", Difficulty: model.Advanced, Prerequisites: []string{"skill-4", "skill-6", "skill-7"}, XPValue: 500, Icon: "Rocket", Position: model.Position{X: 2, Y: 2}},
	}

	lessons := []model.Lesson{
		{UUIDBase: model.UUIDBase{ID: "lesson-1-1"}, SkillID: "skill-1", Title: "Introduction to HTML", Content: "HTML (HyperText Markup Language) is the standard markup language for creating web pages...", Order: 1, EstimatedTime: 15},
		{UUIDBase: model.UUIDBase{ID: "lesson-1-2"}, SkillID: "skill-1", Title: "HTML Tags and Elements", Content: "HTML uses tags to define elements. Tags are enclosed in angle brackets...", Order: 2, EstimatedTime: 20},
		{UUIDBase: model.UUIDBase{ID: "lesson-1-3"}, SkillID: "skill-1", Title: "HTML Document Structure", Content: "Every HTML document has a basic structure with DOCTYPE, html, head, and body tags...", Order: 3, EstimatedTime: 25},
		{UUIDBase: model.UUIDBase{ID: "lesson-2-1"}, SkillID: "skill-2", Title: "CSS Basics", Content: "CSS (Cascading Style Sheets) is used to style HTML elements...", Order: 1, EstimatedTime: 20},
		{UUIDBase: model.UUIDBase{ID: "lesson-2-2"}, SkillID: "skill-2", Title: "CSS Selectors", Content: "CSS selectors allow you to target specific HTML elements for styling...", Order: 2, EstimatedTime: 25},
		{UUIDBase: model.UUIDBase{ID: "lesson-3-1"}, SkillID: "skill-3", Title: "JavaScript Introduction", Content: "JavaScript is a programming language that adds interactivity to web pages...", Order: 1, EstimatedTime: 20},
		{UUIDBase: model.UUIDBase{ID: "lesson-3-2"}, SkillID: "skill-3", Title: "Variables and Data Types", Content: "JavaScript variables can hold different types of data...", Order: 2, EstimatedTime: 30},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range skills {
			if err := tx.Create(&skills[i]).Error; err != nil {
				return err
			}
		}
		for i := range lessons {
			if err := tx.Create(&lessons[i]).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded %d skills and %d lessons", len(skills), len(lessons))
		return nil
	})
	return err == nil, err
}
