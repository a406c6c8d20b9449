package user

import (
	"context"
	"errors"

	"github.com/trezcool/edtrack/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type (
	Repository interface {
		// CheckUsernameUniqueness returns ErrUsernameExists when the username is taken.
		CheckUsernameUniqueness(ctx context.Context, username string) error
		// CreateUser inserts the user. Implementations must also return ErrUsernameExists
		// when the store rejects a duplicate (eg: concurrent signups).
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int64) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
		// GetUserByCredentials finds the user matching both username and password exactly.
		GetUserByCredentials(ctx context.Context, username, password string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckUniqueness maps a taken username to a 400 validation error.
func (svc *Service) CheckUniqueness(ctx context.Context, uname string) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname); err != nil {
		if err == ErrUsernameExists {
			return core.NewValidationError(err)
		}
		return err
	}
	return nil
}

// Create signs a new user up. No token is issued.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.CheckUniqueness(ctx, nu.Username); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(ctx, User{
		Username: nu.Username,
		Password: nu.Password,
		Role:     nu.Role,
	})
	if err == ErrUsernameExists {
		return User{}, core.NewValidationError(err)
	}
	return usr, err
}

// Authenticate returns the user whose username and password both match exactly.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByCredentials(ctx, uname, pwd)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, uname)
}

// SetPassword replaces a user's password (admin CLI).
func (svc *Service) SetPassword(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(ctx, uname)
	if err != nil {
		return User{}, err
	}
	usr.Password = pwd
	return svc.repo.UpdateUser(ctx, usr)
}
