package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/repository"
	"github.com/orgspace/orgspace-api/internal/utils"
)

var (
	ErrInvalidUserName         = errors.New("user name cannot be empty")
	ErrInvalidTelegramUserName = errors.New("telegram username cannot be empty")
	ErrTelegramUserNameTaken   = errors.New("a user with this telegram username already exists")
)

// UserService provides business logic for user management. Users are
// provisioned by admins; they never self-register.
type UserService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganisationRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganisationRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// UserInput represents parameters to create or update a user.
type UserInput struct {
	Name             string
	TelegramUserName string
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(input UserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidUserName
	}
	username := strings.TrimSpace(input.TelegramUserName)
	if username == "" {
		return nil, ErrInvalidTelegramUserName
	}

	taken, err := s.userRepo.ExistsByTelegramUserName(username, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check telegram username: %w", err)
	}
	if taken {
		return nil, ErrTelegramUserNameTaken
	}

	user := &models.User{
		Name:             name,
		TelegramUserName: username,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user with their memberships.
func (s *UserService) GetUser(id uint64) (*models.User, []models.UserOnOrg, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	memberships, err := s.orgRepo.ListMembershipsByUserID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return user, memberships, nil
}

// ListUsers retrieves users with pagination.
func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser updates a user's name and telegram username.
func (s *UserService) UpdateUser(id uint64, input UserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if username := strings.TrimSpace(input.TelegramUserName); username != "" && username != user.TelegramUserName {
		taken, err := s.userRepo.ExistsByTelegramUserName(username, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check telegram username: %w", err)
		}
		if taken {
			return nil, ErrTelegramUserNameTaken
		}
		user.TelegramUserName = username
		// The linked id belongs to the old username
		user.TelegramID = nil
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser soft deletes a user.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
