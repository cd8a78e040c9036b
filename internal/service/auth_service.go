package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult 注册/登录成功后的令牌与用户信息
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ProviderIdentity 身份提供方回传的会话数据
type ProviderIdentity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// ProviderClient 调用外部身份提供方换取会话。提供方响应可能较慢，超时放宽。
type ProviderClient struct {
	baseURL string
	client  *http.Client
}

func NewProviderClient(baseURL string) *ProviderClient {
	return &ProviderClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ExchangeSession 用一次性 session_id 换取身份与会话令牌
func (p *ProviderClient) ExchangeSession(ctx context.Context, sessionID string) (*ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, util.Dependency("identity provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.ErrInvalidInput
	}

	var identity ProviderIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, util.Dependency("identity provider", err)
	}
	if identity.Email == "" || identity.SessionToken == "" {
		return nil, util.Dependency("identity provider", fmt.Errorf("incomplete session data"))
	}
	return &identity, nil
}

type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	provider    *ProviderClient
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, provider *ProviderClient, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *AuthService) Register(name, email, password string) (*AuthResult, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		XP:       0,
		Level:    1,
		AuthMode: model.AuthModeToken,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthenticated
		}
		return nil, err
	}
	// 第三方登录用户没有本地密码
	if user.Password == "" {
		return nil, util.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrUnauthenticated
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ExchangeProviderSession 换取提供方会话：按邮箱建/取用户，落库会话令牌
func (s *AuthService) ExchangeProviderSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	identity, err := s.provider.ExchangeSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByEmail(identity.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{
			Name:     identity.Name,
			Email:    identity.Email,
			Picture:  identity.Picture,
			XP:       0,
			Level:    1,
			AuthMode: model.AuthModeProvider,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	session := &model.Session{
		UserID:       user.ID,
		SessionToken: identity.SessionToken,
		ExpiresAt:    time.Now().Add(s.cfg.Session.ExpireTime),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, nil, err
	}

	s.logger.Info("provider session created", zap.String("user_id", user.ID))
	return user, session, nil
}

// Logout 删除会话行。没有会话也视为成功。
func (s *AuthService) Logout(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(sessionToken)
}

// ResolveSessionToken 校验 cookie 会话并加载用户。过期即拒绝，行仍在也不例外。
func (s *AuthService) ResolveSessionToken(token string) (*model.User, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthenticated
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, util.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 会话指向已删除的用户，按未认证处理
			return nil, util.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// PromoteToAdmin 演示环境的自助提权
func (s *AuthService) PromoteToAdmin(userID string) error {
	return s.userRepo.SetAdmin(userID, true)
}

// ResolveBearerToken 校验 JWT 并加载用户
func (s *AuthService) ResolveBearerToken(token string) (*model.User, error) {
	claims, err := util.ParseJWT(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
