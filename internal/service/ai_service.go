package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"

	"gorm.io/gorm"
)

type AIService struct {
	config       config.AIConfig
	skillRepo    *repository.SkillRepository
	lessonRepo   *repository.LessonRepository
	progressRepo *repository.SkillProgressRepository
	client       *http.Client
}

func NewAIService(cfg config.AIConfig, skillRepo *repository.SkillRepository, lessonRepo *repository.LessonRepository, progressRepo *repository.SkillProgressRepository) *AIService {
	return &AIService{
		config:       cfg,
		skillRepo:    skillRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		// 生成可能要几十秒，超时放宽
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig 配置热更新入口
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.config = cfg
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// RecommendationResult 推荐结果连同已完成技能一并返回
type RecommendationResult struct {
	Recommendations string   `json:"recommendations"`
	CompletedSkills []string `json:"completed_skills"`
}

// GeneratedLesson 生成课程时要求模型输出的结构
type GeneratedLesson struct {
	Title         string                 `json:"title"`
	Content       string                 `json:"content"`
	EstimatedTime int                    `json:"estimated_time"`
	Resources     []model.LessonResource `json:"resources"`
}

// LessonGenerationInput 管理端课程生成参数。
// SkillID 为空时按 NewSkillName 新建技能再生成。
type LessonGenerationInput struct {
	SkillID           string
	NewSkillName      string
	NewSkillCategory  string
	Topic             string
	Difficulty        model.Difficulty
	XPPoints          int
	Count             int
	LearningObjective string
}

// LessonGenerationResult 返回落库后的课程，连同归属技能
type LessonGenerationResult struct {
	SkillID string         `json:"skill_id"`
	Lessons []model.Lesson `json:"lessons"`
}

func (s *AIService) Chat(systemMessage, prompt string) (string, error) {
	messages := []AIChatMessage{
		{Role: "system", Content: systemMessage},
		{Role: "user", Content: prompt},
	}

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", util.Dependency("text generation", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", util.Dependency("text generation", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", util.Dependency("text generation", err)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", util.Dependency("text generation", fmt.Errorf("AI returned no choices"))
}

// RecommendSkills 结合已完成技能推荐后续学习方向
func (s *AIService) RecommendSkills(userID string) (*RecommendationResult, error) {
	records, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	skills, err := s.skillRepo.FindAll()
	if err != nil {
		return nil, err
	}

	completedIDs := make(map[string]struct{})
	for _, p := range records {
		if p.Status == model.StatusCompleted {
			completedIDs[p.SkillID] = struct{}{}
		}
	}

	var completedNames, availableNames []string
	for _, skill := range skills {
		if _, ok := completedIDs[skill.ID]; ok {
			completedNames = append(completedNames, skill.Name)
		} else if len(availableNames) < 20 {
			availableNames = append(availableNames, skill.Name)
		}
	}

	completedText := "None"
	if len(completedNames) > 0 {
		completedText = strings.Join(completedNames, ", ")
	}
	prompt := fmt.Sprintf("User has completed these skills: %s. Available skills to learn: %s. Recommend 3 next skills and explain why.",
		completedText, strings.Join(availableNames, ", "))

	response, err := s.Chat(
		"You are a learning path advisor. Based on completed skills, recommend the next 3 skills to learn. Respond in JSON format with an array of objects containing 'skill_name' and 'reason'.",
		prompt)
	if err != nil {
		return nil, err
	}

	if completedNames == nil {
		completedNames = []string{}
	}
	return &RecommendationResult{
		Recommendations: response,
		CompletedSkills: completedNames,
	}, nil
}

// GenerateLessonContent 为指定技能与主题生成课程正文
func (s *AIService) GenerateLessonContent(skillName, lessonTitle string) (string, error) {
	prompt := fmt.Sprintf("Create a comprehensive lesson about '%s' for the skill '%s'. Include explanations, examples, and key takeaways.",
		lessonTitle, skillName)
	return s.Chat(
		"You are an expert instructor. Create detailed, engaging lesson content for the given skill and topic.",
		prompt)
}

// GenerateLessons 管理端批量生成课程并落库，order 接在现有课程之后。
// 指定 SkillID 时技能必须存在；否则用 NewSkillName 新建技能
// （新建走仓储层，技能列表缓存靠 TTL 过期）。
func (s *AIService) GenerateLessons(input LessonGenerationInput) (*LessonGenerationResult, error) {
	var skill *model.Skill
	switch {
	case input.SkillID != "":
		found, err := s.skillRepo.FindByID(input.SkillID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrSkillNotFound
			}
			return nil, err
		}
		skill = found
	case input.NewSkillName != "":
		difficulty := input.Difficulty
		if difficulty == "" {
			difficulty = model.Beginner
		}
		xp := input.XPPoints
		if xp <= 0 {
			xp = 100
		}
		skill = &model.Skill{
			Name:          input.NewSkillName,
			Category:      input.NewSkillCategory,
			Difficulty:    difficulty,
			Prerequisites: []string{},
			XPValue:       xp,
		}
		if err := s.skillRepo.Create(skill); err != nil {
			return nil, err
		}
	default:
		return nil, util.ErrInvalidInput
	}

	count := input.Count
	if count <= 0 {
		count = 3
	}

	topic := input.Topic
	if topic == "" {
		topic = skill.Name
	}
	prompt := fmt.Sprintf(
		"Create %d lessons about '%s' for the skill '%s' (%s).",
		count, topic, skill.Name, skill.Description)
	if input.LearningObjective != "" {
		prompt += fmt.Sprintf(" Learning objective: %s.", input.LearningObjective)
	}
	prompt += " Respond with ONLY a JSON array, each element an object with keys: title (string), content (string, detailed markdown lesson text), estimated_time (int, minutes), resources (array of objects with title and url). No prose outside the JSON."

	response, err := s.Chat(
		"You are an expert curriculum designer. You output strictly valid JSON.",
		prompt)
	if err != nil {
		return nil, err
	}

	var generated []GeneratedLesson
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &generated); err != nil {
		return nil, util.Dependency("text generation", fmt.Errorf("unparseable lesson payload: %w", err))
	}

	existing, err := s.lessonRepo.CountBySkillID(skill.ID)
	if err != nil {
		return nil, err
	}

	lessons := make([]model.Lesson, 0, len(generated))
	for i, g := range generated {
		lesson := model.Lesson{
			SkillID:       skill.ID,
			Title:         g.Title,
			Content:       g.Content,
			Order:         int(existing) + i + 1,
			EstimatedTime: g.EstimatedTime,
			Resources:     g.Resources,
		}
		if err := s.lessonRepo.Create(&lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return &LessonGenerationResult{SkillID: skill.ID, Lessons: lessons}, nil
}

// stripCodeFence 模型偶尔会把 JSON 包在 ``` 里
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
