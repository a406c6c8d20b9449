package main

import (
	"errors"

	"github.com/trezcool/edtrack/storage/database"
)

var (
	gooseRunFunc = database.RunMigration // mockable

	errMigrateEngine = errors.New("migrate requires the postgres engine (mysql is migrated on connect)")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errMigrateEngine
	}
	return gooseRunFunc(args[0], cli.db, args[1:]...)
}
