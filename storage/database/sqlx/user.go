package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/user"
)

const userColumns = `id, username, password, role`

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) get(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	var usr user.User
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &usr, query, args...)
	})
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return usr, nil
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string) error {
	var taken bool
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &taken, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	})
	if err != nil {
		return errors.Wrap(err, "checking username")
	}
	if taken {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(
			ctx,
			`INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING id`,
			usr.Username, usr.Password, usr.Role,
		).Scan(&usr.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	return repo.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.get(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (repo *userRepository) GetUserByCredentials(ctx context.Context, username, password string) (user.User, error) {
	return repo.get(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 AND password = $2`, username, password)
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	var res sql.Result
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) (err error) {
		res, err = conn.ExecContext(
			ctx,
			`UPDATE users SET username = $1, password = $2, role = $3 WHERE id = $4`,
			usr.Username, usr.Password, usr.Role, usr.ID,
		)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	} else if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
