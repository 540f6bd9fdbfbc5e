package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/JuanTorresCortes/auth-server/internal/handler"
	"github.com/JuanTorresCortes/auth-server/internal/model"
	"github.com/JuanTorresCortes/auth-server/internal/repo"
	"github.com/JuanTorresCortes/auth-server/internal/service"
	"github.com/JuanTorresCortes/auth-server/internal/testutil"
)

var testSecret = []byte("test-secret")

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	Email   string            `json:"email"`
	Error   map[string]string `json:"error"`
	Data    json.RawMessage   `json:"data"`
}

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(conn)
	taskRepo := repo.NewTaskRepo(conn)

	authService := service.NewAuthService(userRepo, testSecret, time.Hour)
	taskService := service.NewTaskService(taskRepo, userRepo)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Tasks:     handler.NewTaskHandler(taskService),
		JWTSecret: testSecret,
	}

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/"), deps)
	return engine, cleanup
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var env envelope
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	}
	return resp, env
}

func registerAndLogin(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	resp, _ := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, env := doRequest(t, router, http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func decodeTask(t *testing.T, env envelope) model.Task {
	t.Helper()
	var task model.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	return task
}
