package dig_container

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/edtrack/apps/api/echo"
	"github.com/trezcool/edtrack/core"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	newConfig := func() *core.Config {
		return &core.Config{
			Env:       "TEST",
			TestMode:  true,
			SecretKey: "secret",
			Auth:      core.AuthConfig{TokenExpiration: time.Minute},
			Server:    core.ServerConfig{Host: ":0", DisableReqLogs: true},
			Database:  core.DatabaseConfig{Engine: core.EngineMemory},
			Storage:   core.StorageConfig{Backend: core.StorageLocal, Dir: dir},
		}
	}

	c := New(newConfig)
	err := c.Invoke(func(server *echoapi.Server, closeDB DBCloser) {
		defer func() { _ = closeDB() }()
		defer func() { _ = server.Close() }()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}

func TestNew_unknownEngine(t *testing.T) {
	c := New(func() *core.Config {
		return &core.Config{Database: core.DatabaseConfig{Engine: "sqlite"}}
	})
	err := c.Invoke(func(server *echoapi.Server) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown database engine "sqlite"`)
}
