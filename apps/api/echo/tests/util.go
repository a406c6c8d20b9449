package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/edtrack/apps/api/echo"
	"github.com/trezcool/edtrack/core"
	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/auth"
	"github.com/trezcool/edtrack/core/user"
	logsvc "github.com/trezcool/edtrack/services/logger"
	"github.com/trezcool/edtrack/storage/database/inmem"
	"github.com/trezcool/edtrack/storage/files"
)

const testSecret = "test-secret"

var (
	errNotAuthenticated   = httpErr{Error: "not authenticated"}
	errInvalidCredentials = httpErr{Error: "invalid credentials"}
)

type env struct {
	app            *Server
	conf           *core.Config
	tokens         *auth.Tokens
	usrRepo        user.Repository
	asgmtRepo      assignment.Repository
	submissionsDir string
}

func testConfig(t *testing.T) *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "EdTech Assignment Tracker",
		SecretKey: testSecret,
		WorkDir:   t.TempDir(),
		Auth:      core.AuthConfig{TokenExpiration: 30 * time.Minute},
		Server: core.ServerConfig{
			Host:            ":0",
			ShutdownTimeout: time.Second,
			StaticDir:       "static",
			DisableReqLogs:  true,
		},
		Database: core.DatabaseConfig{Engine: core.EngineMemory},
		Storage: core.StorageConfig{
			Backend: core.StorageLocal,
			Dir:     t.TempDir(),
		},
	}
}

func setup(t *testing.T, confs ...*core.Config) *env {
	conf := testConfig(t)
	if len(confs) > 0 {
		conf = confs[0]
	}

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	asgmtRepo := inmemdb.NewAssignmentRepository(db)
	store, err := files.NewLocalStore(conf.Storage.Dir)
	if err != nil {
		t.Fatalf("files.NewLocalStore() failed: %v", err)
	}

	// set up services
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	tokens := auth.NewTokens(conf.SecretKey, conf.Auth.TokenExpiration)

	// set up server
	app := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       user.NewService(usrRepo),
		AssignmentSvc: assignment.NewService(asgmtRepo, store),
		Tokens:        tokens,
		Validate:      validate,
		Translator:    translator,
	})
	t.Cleanup(func() { _ = app.Close() })

	return &env{
		app:            app,
		conf:           conf,
		tokens:         tokens,
		usrRepo:        usrRepo,
		asgmtRepo:      asgmtRepo,
		submissionsDir: conf.Storage.Dir,
	}
}

func (e *env) serve(req *http.Request, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	e.app.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, e *env, usr user.User) string {
	token, err := e.tokens.Issue(usr.Username)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpMsg struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func newFormRequest(path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, httptest.NewRecorder()
}

// newUploadRequest sends content as the multipart file `field` named filename.
func newUploadRequest(t *testing.T, path, token, field, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile() failed: %v", err)
		}
		if _, err = io.WriteString(part, content); err != nil {
			t.Fatalf("WriteString() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart.Close() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
