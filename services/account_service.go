// file: services/account_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"MYR/models"

	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, userID uint32) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.User, error)
	UpdateRole(ctx context.Context, userID uint32, role models.UserRole) error
	UpdateSchedule(ctx context.Context, userID uint32, fn func(models.WeeklyAvailability) models.WeeklyAvailability) (models.WeeklyAvailability, error)
}

const (
	minPasswordLength = 8
	searchLimit       = 20
)

// ErrBadCredentials hides whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Cohort   *float64
	Session  string
}

// SearchResult is one entry of the member picker.
type SearchResult struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
	Display  string `json:"display"`
}

type AccountService struct {
	users UserStore
	log   *zap.Logger
}

func NewAccountService(users UserStore, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{users: users, log: log}
}

// Register creates a member account. The role is never taken from the caller.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if in.Username == "" {
		return nil, invalid("username", "username is required")
	}
	if utf8.RuneCountInString(in.Username) > 150 {
		return nil, invalid("username", "username is longer than 150 characters")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	session, ok := models.ParseSession(in.Session)
	if !ok {
		return nil, invalid("session", "unknown session "+in.Session)
	}
	if in.Cohort != nil && *in.Cohort <= 0 {
		return nil, invalid("cohort", "cohort must be positive")
	}

	exists, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	user := &models.User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Cohort:   in.Cohort,
		Session:  session,
		Role:     models.RoleMember,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.Uint32("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *AccountService) Get(ctx context.Context, userID uint32) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AccountService) CurrentRole(ctx context.Context, userID uint32) (models.UserRole, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Search matches on a name substring. An empty query returns nothing.
func (s *AccountService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}
	users, err := s.users.SearchByName(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	out := make([]SearchResult, 0, len(users))
	for i := range users {
		out = append(out, SearchResult{
			ID:       users[i].ID,
			Username: users[i].Username,
			Display:  users[i].DisplayName(),
		})
	}
	return out, nil
}

func (s *AccountService) SetRole(ctx context.Context, actor Actor, userID uint32, role models.UserRole) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if role != models.RoleMember && role != models.RoleAdmin {
		return invalid("role", "unknown role "+string(role))
	}
	if actor.UserID == userID && role != models.RoleAdmin {
		return invalid("role", "admins cannot demote themselves")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	s.log.Info("user role changed", zap.Uint32("user_id", userID), zap.String("role", string(role)), zap.Uint32("by", actor.UserID))
	return nil
}

// EnsureAdmin creates the bootstrap admin when the username is free. It reports
// whether an account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password, name string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return false, nil
	}
	admin := &models.User{
		Username: username,
		Password: password,
		Name:     name,
		Session:  models.SessionAdmin,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("bootstrap admin created", zap.String("username", username))
	return true, nil
}
