package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/edtrack/core"
	"github.com/trezcool/edtrack/core/user"
	"github.com/trezcool/edtrack/storage/database"
	gormrepos "github.com/trezcool/edtrack/storage/database/gorm"
	sqlxrepos "github.com/trezcool/edtrack/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	db, usrRepo, closeDB, err := openDB(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo),
	}
	err = cli.run(os.Args)
	if cErr := closeDB(); cErr != nil {
		logger.Printf("closing database: %v", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openDB(conf *core.Config) (*sql.DB, user.Repository, func() error, error) {
	switch conf.Database.Engine {
	case core.EnginePostgres:
		if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
			return nil, nil, nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, nil, err
		}
		return db.DB, sqlxrepos.NewUserRepository(db), db.Close, nil

	case core.EngineMySQL:
		db, err := gormrepos.Open(conf)
		if err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		return nil, gormrepos.NewUserRepository(db), sqlDB.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("admin commands need a persistent database engine, got %q", conf.Database.Engine)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
