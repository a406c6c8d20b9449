package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/edtrack/core/user"
)

type userRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func toUser(row userRow) user.User {
	return user.User{ID: row.ID, Username: row.Username, Password: row.Password, Role: row.Role}
}

func fromUser(usr user.User) userRow {
	return userRow{ID: usr.ID, Username: usr.Username, Password: usr.Password, Role: usr.Role}
}

func (repo *userRepository) first(ctx context.Context, query interface{}, args ...interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return toUser(row), nil
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&userRow{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "checking username")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := fromUser(usr)
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return toUser(row), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.first(ctx, "username = ?", username)
}

func (repo *userRepository) GetUserByCredentials(ctx context.Context, username, password string) (user.User, error) {
	return repo.first(ctx, "username = ? AND password = ?", username, password)
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res := repo.db.WithContext(ctx).
		Model(&userRow{ID: usr.ID}).
		Select("username", "password", "role").
		Updates(fromUser(usr))
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 affected rows when nothing changed
		if _, err := repo.GetUserByID(ctx, usr.ID); err != nil {
			return user.User{}, err
		}
	}
	return usr, nil
}
