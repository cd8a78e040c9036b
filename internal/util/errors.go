package util

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrProgressNotFound = errors.New("user skill not found")
	ErrAlreadyStarted   = errors.New("skill already started")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidInput     = errors.New("invalid input")
)

// DependencyError 外部依赖（数据库/身份提供方/AI服务）调用失败，
// 与业务错误区分开，由调用方原样上抛，不在内部重试。
type DependencyError struct {
	Dep string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s failed: %v", e.Dep, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func Dependency(dep string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyError{Dep: dep, Err: err}
}

func IsDependencyError(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
