package inmemdb

import (
	"context"

	"github.com/trezcool/edtrack/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db.user}
}

// find must be called with the lock held.
func (repo *userRepository) find(match func(usr *user.User) bool) (user.User, error) {
	for _, usr := range repo.db.table {
		if match(usr) {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, err := repo.find(func(usr *user.User) bool { return usr.Username == username }); err == nil {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// enforce the unique constraint the relational engines have
	if _, err := repo.find(func(u *user.User) bool { return u.Username == usr.Username }); err == nil {
		return user.User{}, user.ErrUsernameExists
	}

	repo.db.pkCount++
	usr.ID = repo.db.pkCount
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id int64) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.find(func(usr *user.User) bool { return usr.Username == username })
}

func (repo *userRepository) GetUserByCredentials(_ context.Context, username, password string) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.find(func(usr *user.User) bool {
		return usr.Username == username && usr.Password == password
	})
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	if other, err := repo.find(func(u *user.User) bool { return u.Username == usr.Username }); err == nil && other.ID != usr.ID {
		return user.User{}, user.ErrUsernameExists
	}
	repo.db.table[usr.ID] = &usr
	return usr, nil
}
