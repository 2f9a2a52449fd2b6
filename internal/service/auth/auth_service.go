// Package auth 提供员工注册、登录、会话与用户管理服务
package auth

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management/internal/common/crypto"
	"github.com/dumeirei/hotel-management/internal/common/database"
	"github.com/dumeirei/hotel-management/internal/common/errors"
	"github.com/dumeirei/hotel-management/internal/common/jwt"
	"github.com/dumeirei/hotel-management/internal/common/logger"
	"github.com/dumeirei/hotel-management/internal/common/utils"
	"github.com/dumeirei/hotel-management/internal/models"
	"github.com/dumeirei/hotel-management/internal/repository"
)

// 校验规则
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// 业务提示
var (
	ErrUsernameTooShort = errors.ErrInvalidParams.WithMessage("El nombre de usuario debe tener al menos 3 caracteres.")
	ErrPasswordTooShort = errors.ErrInvalidParams.WithMessage("La contraseña debe tener al menos 6 caracteres.")
	ErrPasswordMismatch = errors.ErrInvalidParams.WithMessage("Las contraseñas no coinciden.")
	ErrLoginRequired    = errors.ErrMissingFields.WithMessage("Usuario y contraseña son obligatorios.")
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *jwt.Manager
	hasher     *crypto.PasswordHasher
	sessions   SessionStore
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *jwt.Manager,
	hasher *crypto.PasswordHasher,
	sessions SessionStore,
) *AuthService {
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if hasher == nil {
		hasher = crypto.NewPasswordHasher(0)
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		hasher:     hasher,
		sessions:   sessions,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// LoginResult 登录结果
type LoginResult struct {
	User  *UserInfo  `json:"user"`
	Token *jwt.Token `json:"token"`
}

// Register 注册员工账号
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*UserInfo, error) {
	username := utils.Sanitize(req.Username)
	if len([]rune(username)) < MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if len([]rune(req.Password)) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	user := &models.User{Username: username, Password: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, errors.ErrDuplicateUsername
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("用户注册成功", logger.UserID(user.ID), logger.Username(user.Username))
	return toUserInfo(user), nil
}

// Login 校验凭据并签发会话
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	username := utils.Sanitize(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrLoginRequired
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Issue(user.ID, user.Username)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}
	if err := s.sessions.Save(ctx, token.SessionID, user.ID, s.jwtManager.TTL()); err != nil {
		return nil, errors.ErrCacheError.WithError(err)
	}

	logger.Info("用户登录", logger.UserID(user.ID), logger.Username(user.Username))
	return &LoginResult{User: toUserInfo(user), Token: token}, nil
}

// Logout 吊销会话；会话 ID 为空时无操作，吊销失败只记录日志
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		logger.Warn("吊销会话失败", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// Verify 校验令牌签名、有效期以及会话是否仍存在
func (s *AuthService) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.ParseToken(token)
	if err != nil {
		return nil, err
	}
	ok, err := s.sessions.Exists(ctx, claims.SessionID())
	if err != nil {
		return nil, errors.ErrCacheError.WithError(err)
	}
	if !ok {
		return nil, errors.ErrTokenInvalid
	}
	return claims, nil
}

// ListUsers 按用户名列出员工账号
func (s *AuthService) ListUsers(ctx context.Context) ([]*UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	out := make([]*UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, toUserInfo(u))
	}
	return out, nil
}

// DeleteUser 删除员工账号，不允许删除当前登录用户
func (s *AuthService) DeleteUser(ctx context.Context, currentUserID, id int64) error {
	if id == currentUserID {
		return errors.ErrCannotDeleteSelf
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("用户已删除", logger.UserID(id), zap.Int64("operator_id", currentUserID))
	return nil
}

func toUserInfo(u *models.User) *UserInfo {
	return &UserInfo{ID: u.ID, Username: u.Username}
}
