package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orgspace/orgspace-api/internal/constants"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/repository"
)

var (
	ErrTelegramNotConfigured = errors.New("telegram login is not configured")
	ErrInvalidTelegramHash   = errors.New("telegram login payload failed signature verification")
	ErrStaleTelegramLogin    = errors.New("telegram login payload is too old")
	ErrUnknownTelegramUser   = errors.New("no account matches this telegram user")
	ErrUserNotFound          = errors.New("user not found")
)

// AuthService verifies Telegram login-widget payloads and resolves them to
// platform users. Users are provisioned by admins with a Telegram username;
// the numeric Telegram id is linked on first login.
type AuthService struct {
	userRepo repository.UserRepository
	botToken string

	now func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, botToken string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		botToken: botToken,
		now:      time.Now,
	}
}

// TelegramLoginInput mirrors the fields the Telegram login widget posts.
type TelegramLoginInput struct {
	ID        int64  `json:"id" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date" binding:"required"`
	Hash      string `json:"hash" binding:"required"`
}

// Login verifies the widget signature and returns the matching user. A user
// without a linked Telegram id is matched by username and linked in place.
func (s *AuthService) Login(input TelegramLoginInput) (*models.User, error) {
	if s.botToken == "" {
		return nil, ErrTelegramNotConfigured
	}
	if !s.verifySignature(input) {
		return nil, ErrInvalidTelegramHash
	}
	if s.now().Unix()-input.AuthDate > constants.TelegramAuthMaxAge {
		return nil, ErrStaleTelegramLogin
	}

	telegramID := strconv.FormatInt(input.ID, 10)

	user, err := s.userRepo.FindByTelegramID(telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username == "" {
		return nil, ErrUnknownTelegramUser
	}
	user, err = s.userRepo.FindByTelegramUserName(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTelegramUser
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.TelegramID = &telegramID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to link telegram id: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// verifySignature checks the widget's HMAC-SHA256 over the data-check string:
// the non-empty fields as "key=value" lines, sorted by key, keyed with
// SHA256(botToken).
func (s *AuthService) verifySignature(input TelegramLoginInput) bool {
	pairs := map[string]string{
		"id":        strconv.FormatInt(input.ID, 10),
		"auth_date": strconv.FormatInt(input.AuthDate, 10),
	}
	if input.FirstName != "" {
		pairs["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		pairs["last_name"] = input.LastName
	}
	if input.Username != "" {
		pairs["username"] = input.Username
	}
	if input.PhotoURL != "" {
		pairs["photo_url"] = input.PhotoURL
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+pairs[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(s.botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(input.Hash))
}
