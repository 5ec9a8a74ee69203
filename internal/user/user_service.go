package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bachaboard/internal/common"
	"bachaboard/internal/dbmysql"
)

// Profile is the user shape returned to authenticated viewers, with the
// viewer-relative follow state joined in.
type Profile struct {
	ID             uint64  `json:"id"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	Theme          string  `json:"theme"`
	AvatarURL      *string `json:"avatar_url"`
	IsFollowing    bool    `json:"is_following"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
}

type UserService interface {
	RegisterUser(ctx context.Context, username, password, displayName, theme string) (*dbmysql.User, error)
	LoginUser(ctx context.Context, username, password string) (*dbmysql.User, string, error)
	ResolveUser(ctx context.Context, userID uint64) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, userID uint64, displayName, theme *string, avatarURL *string) error
	ListProfiles(ctx context.Context, viewerID uint64) ([]Profile, error)
	GetProfile(ctx context.Context, viewerID, targetID uint64) (*Profile, error)
	ToggleFollow(ctx context.Context, userID, targetID uint64) (string, error)
}

type userService struct {
	userRepo   UserRepository
	followRepo FollowRepository
	tokens     *common.TokenManager
}

func NewUserService(userRepo UserRepository, followRepo FollowRepository, tokens *common.TokenManager) UserService {
	return &userService{userRepo: userRepo, followRepo: followRepo, tokens: tokens}
}

func (s *userService) RegisterUser(ctx context.Context, username, password, displayName, theme string) (*dbmysql.User, error) {
	if err := common.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := common.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}
	if theme == "" {
		theme = common.ThemeNeutral.String()
	}
	if err := common.ValidateTheme(theme); err != nil {
		return nil, err
	}

	// username is case-sensitive unique
	exists, err := s.userRepo.CheckUserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username already registered", common.ErrConflict)
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &dbmysql.User{
		Username:     username,
		PasswordHash: hashed,
		DisplayName:  displayName,
		Theme:        theme,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// two registrations racing past the exists check; the unique
		// index decides, we report the loser as a conflict
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already registered", common.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) LoginUser(ctx context.Context, username, password string) (*dbmysql.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: incorrect username or password", common.ErrUnauthorized)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: incorrect username or password", common.ErrUnauthorized)
		}
		return nil, "", err
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", fmt.Errorf("%w: incorrect username or password", common.ErrUnauthorized)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResolveUser maps a validated credential subject back to a user record.
// A token whose subject no longer exists is an authentication failure,
// not a missing resource.
func (s *userService) ResolveUser(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint64, displayName, theme *string, avatarURL *string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return err
	}

	if displayName != nil {
		if err := common.ValidateDisplayName(*displayName); err != nil {
			return err
		}
		user.DisplayName = *displayName
	}
	if theme != nil {
		if err := common.ValidateTheme(*theme); err != nil {
			return err
		}
		user.Theme = *theme
	}
	if avatarURL != nil {
		user.AvatarURL = avatarURL
	}

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userService) ListProfiles(ctx context.Context, viewerID uint64) ([]Profile, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		p, err := s.buildProfile(ctx, viewerID, &users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

func (s *userService) GetProfile(ctx context.Context, viewerID, targetID uint64) (*Profile, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return nil, err
	}
	return s.buildProfile(ctx, viewerID, target)
}

func (s *userService) buildProfile(ctx context.Context, viewerID uint64, target *dbmysql.User) (*Profile, error) {
	isFollowing := false
	if viewerID != target.UserID {
		var err error
		isFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, target.UserID)
		if err != nil {
			return nil, err
		}
	}

	followers, err := s.followRepo.FollowerCount(ctx, target.UserID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingCount(ctx, target.UserID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             target.UserID,
		Username:       target.Username,
		DisplayName:    target.DisplayName,
		Theme:          target.Theme,
		AvatarURL:      target.AvatarURL,
		IsFollowing:    isFollowing,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// ToggleFollow flips the directed edge userID -> targetID. Two identical
// calls in a row return the graph to its original state.
func (s *userService) ToggleFollow(ctx context.Context, userID, targetID uint64) (string, error) {
	if userID == targetID {
		return "", fmt.Errorf("%w: cannot follow yourself", common.ErrInvalidArgument)
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return "", err
	}

	following, err := s.followRepo.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return "", err
	}

	if following {
		if err := s.followRepo.DeleteFollow(ctx, userID, targetID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Unfollowed %s", target.DisplayName), nil
	}

	edge := &dbmysql.Follow{FollowerID: userID, FollowedID: targetID}
	if err := s.followRepo.CreateFollow(ctx, edge); err != nil {
		// concurrent toggle already inserted the edge; the unique index
		// keeps the graph consistent, report the winning state
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Sprintf("Now following %s", target.DisplayName), nil
		}
		return "", err
	}
	return fmt.Sprintf("Now following %s", target.DisplayName), nil
}
