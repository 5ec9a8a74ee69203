package user

import (
	"context"

	"gorm.io/gorm"

	"bachaboard/internal/dbmysql"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error)
	UpdateUser(ctx context.Context, user *dbmysql.User) error
	ListUsers(ctx context.Context) ([]dbmysql.User, error)
	UsersByIDs(ctx context.Context, userIDs []uint64) ([]dbmysql.User, error)
	CheckUserExists(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ListUsers(ctx context.Context) ([]dbmysql.User, error) {
	var users []dbmysql.User
	err := r.db.WithContext(ctx).Order("user_id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) UsersByIDs(ctx context.Context, userIDs []uint64) ([]dbmysql.User, error) {
	if len(userIDs) == 0 {
		return []dbmysql.User{}, nil
	}
	var users []dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users).Error
	return users, err
}

func (r *userRepository) CheckUserExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
