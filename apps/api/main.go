package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // /debug/pprof on the default mux

	dig_container "github.com/trezcool/edtrack/apps/api/di/dig"
	echoapi "github.com/trezcool/edtrack/apps/api/echo"
	"github.com/trezcool/edtrack/core"
)

func main() {
	if err := dig_container.New().Invoke(run); err != nil {
		log.Fatal(err)
	}
}

func run(
	conf *core.Config,
	apiLogger core.Logger,
	dbLoggerParam dig_container.DBLoggerParam,
	closeDB dig_container.DBCloser,
	server *echoapi.Server,
) error {
	apiLogger.Info(fmt.Sprintf("assignment tracker starting: build %q, env %q, db %q, storage %q",
		conf.Build, conf.Env, conf.Database.Engine, conf.Storage.Backend))
	defer func() {
		if err := closeDB(); err != nil {
			dbLoggerParam.Logger.Error("closing database", err)
		}
		apiLogger.Info("assignment tracker stopped")
	}()

	serveDebug(conf, apiLogger)
	go server.Start()

	select {
	case err := <-server.Errors():
		apiLogger.Error(fmt.Sprintf("server error: %v", err), err)
		return err

	case sig := <-server.ShutdownSignal():
		apiLogger.Info(fmt.Sprintf("%v: shutting down", sig))
		return stop(conf, apiLogger, server)
	}
}

// serveDebug publishes the deployment under /debug/vars and serves the default mux on DebugHost.
func serveDebug(conf *core.Config, logger core.Logger) {
	for name, val := range map[string]string{
		"build":          conf.Build,
		"env":            conf.Env,
		"dbEngine":       conf.Database.Engine,
		"storageBackend": conf.Storage.Backend,
	} {
		v, ok := expvar.Get(name).(*expvar.String)
		if !ok {
			v = expvar.NewString(name)
		}
		v.Set(val)
	}

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()
}

// stop drains in-flight requests until ShutdownTimeout, then closes the listener.
func stop(conf *core.Config, logger core.Logger, server *echoapi.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("graceful shutdown failed: %v", err), err)
		return server.Close()
	}
	return nil
}
