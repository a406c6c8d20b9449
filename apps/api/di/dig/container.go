// Package dig_container wires the API dependencies with go.uber.org/dig.
package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/edtrack/apps/api/echo"
	"github.com/trezcool/edtrack/core"
	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/auth"
	"github.com/trezcool/edtrack/core/user"
	logsvc "github.com/trezcool/edtrack/services/logger"
	"github.com/trezcool/edtrack/storage/database"
	gormrepos "github.com/trezcool/edtrack/storage/database/gorm"
	inmemdb "github.com/trezcool/edtrack/storage/database/inmem"
	sqlxrepos "github.com/trezcool/edtrack/storage/database/sqlx"
	"github.com/trezcool/edtrack/storage/files"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// DBCloser releases the database connection pool, if any.
	DBCloser func() error

	repositories struct {
		dig.Out
		UserRepo       user.Repository
		AssignmentRepo assignment.Repository
		Closer         DBCloser
	}

	serverParams struct {
		dig.In
		Conf          *core.Config
		Logger        core.Logger
		UserSvc       *user.Service
		AssignmentSvc *assignment.Service
		Tokens        *auth.Tokens
		Validate      *validator.Validate
		Translator    ut.Translator
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

// newRepositories opens the configured database engine and returns its repositories.
func newRepositories(conf *core.Config, loggerParam DBLoggerParam) (repositories, error) {
	logger := loggerParam.Logger

	switch conf.Database.Engine {
	case core.EnginePostgres:
		if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
			return repositories{}, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(conf)
		if err != nil {
			return repositories{}, err
		}
		if err = database.Migrate(db.DB); err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		logger.Info(fmt.Sprintf("connected to postgres at %s", conf.Database.Address()))
		return repositories{
			UserRepo:       sqlxrepos.NewUserRepository(db),
			AssignmentRepo: sqlxrepos.NewAssignmentRepository(db),
			Closer:         db.Close,
		}, nil

	case core.EngineMySQL:
		db, err := gormrepos.Open(conf)
		if err != nil {
			return repositories{}, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return repositories{}, errors.Wrap(err, "getting sql.DB")
		}
		logger.Info(fmt.Sprintf("connected to mysql at %s", conf.Database.Address()))
		return repositories{
			UserRepo:       gormrepos.NewUserRepository(db),
			AssignmentRepo: gormrepos.NewAssignmentRepository(db),
			Closer:         sqlDB.Close,
		}, nil

	case core.EngineMemory:
		logger.Warn("using the in-memory database: data is lost on exit")
		db := inmemdb.Open()
		return repositories{
			UserRepo:       inmemdb.NewUserRepository(db),
			AssignmentRepo: inmemdb.NewAssignmentRepository(db),
			Closer:         func() error { return nil },
		}, nil

	default:
		return repositories{}, fmt.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}

func newFileStore(conf *core.Config) (assignment.FileStore, error) {
	switch conf.Storage.Backend {
	case core.StorageLocal:
		return files.NewLocalStore(conf.Storage.Dir)
	case core.StorageB2:
		return files.NewB2Store(
			context.Background(),
			conf.Storage.B2AccountID,
			conf.Storage.B2ApplicationKey,
			conf.Storage.B2Bucket,
			conf.Storage.Dir,
		)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}

func newTokens(conf *core.Config) *auth.Tokens {
	return auth.NewTokens(conf.SecretKey, conf.Auth.TokenExpiration)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		UserSvc:       p.UserSvc,
		AssignmentSvc: p.AssignmentSvc,
		Tokens:        p.Tokens,
		Validate:      p.Validate,
		Translator:    p.Translator,
	})
}

type NewConfigFunc func() *core.Config

// New returns a new dependency injection dig.Container.
// newConfig defaults to core.NewConfig.
func New(newConfig ...NewConfigFunc) *dig.Container {
	c := dig.New()

	var confFunc NewConfigFunc = core.NewConfig
	if len(newConfig) > 0 {
		confFunc = newConfig[0]
	}

	must(c.Provide(confFunc))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newFileStore))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newTokens))
	must(c.Provide(user.NewService))
	must(c.Provide(assignment.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
