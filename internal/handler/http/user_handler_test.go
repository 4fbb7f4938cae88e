package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	handler "github.com/classbrand/brandnet/internal/handler/http"
	dto "github.com/classbrand/brandnet/internal/handler/http/dto"
	mocks "github.com/classbrand/brandnet/internal/handler/http/mocks"
	"github.com/classbrand/brandnet/internal/infrastructure/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidators()
	os.Exit(m.Run())
}

func setupRouter(h handler.UserHandlerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", h.CreateUser)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
	r.GET("/users/:id", h.GetUser)
	return r
}

func postJSON(r http.Handler, path string, payload interface{}, headers ...string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	payload := dto.CreateUserRequest{
		Email:       "test@example.com",
		Password:    "Password123!",
		DisplayName: "testuser",
	}

	w := postJSON(r, "/register", payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
}

func TestCreateUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailCreateUser = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	// Password omitted intentionally
	payload := dto.CreateUserRequest{
		Email: "test@example.com",
	}

	w := postJSON(r, "/register", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Password' failed on the 'required' tag")
}

func TestCreateUser_WeakPassword(t *testing.T) {
	h := handler.NewUserHandler(mocks.NewMockUserUsecase())
	r := setupRouter(h)

	w := postJSON(r, "/register", dto.CreateUserRequest{Email: "test@example.com", Password: "alllowercase1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "containsuppercase")
}

func TestCreateUser_Exists(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailCreateUser = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := postJSON(r, "/register", dto.CreateUserRequest{Email: "test@example.com", Password: "Password123!"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")
}

func TestLogin(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	payload := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "Password123!",
	}
	w := postJSON(r, "/login", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_access_token")
	assert.Contains(t, w.Body.String(), "mock_refresh_token")
}

func TestLogin_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailLogin = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	payload := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "Password123!",
	}
	w := postJSON(r, "/login", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestRefreshToken(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := postJSON(r, "/refresh", dto.RefreshTokenRequest{RefreshToken: "mock_refresh_token"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_access_token")

	mockUsecase.ShouldFailRefreshToken = true
	w = postJSON(r, "/refresh", dto.RefreshTokenRequest{RefreshToken: "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	id := uuid.New().String()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+id, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testuser")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailGetByID = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupRouter(h)
	id := uuid.New().String()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+id, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}
