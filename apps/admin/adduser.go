package main

import (
	"context"

	"github.com/trezcool/edtrack/core"
	"github.com/trezcool/edtrack/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, pwd, role string) error {
	ctx := context.Background()
	uname = core.CleanString(uname)
	role = core.CleanString(role)

	usr, err := cli.usrRepo.GetUserByUsername(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, user.User{Username: uname, Password: pwd, Role: role})
		return err
	}

	usr.Password = pwd
	usr.Role = role
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
