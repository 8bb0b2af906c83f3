package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cardflow/internal/handler"
	"cardflow/internal/middleware"
	"cardflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupUserTest() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserRepository)
	userHandler := handler.NewUserHandler(mockRepo)

	r.POST("/auth/register", userHandler.Register)
	r.POST("/auth/login", userHandler.Login)

	os.Setenv("JWT_SECRET", "test-secret")
	return r, mockRepo
}

// setupSettingsTest wires the routes that expect an authenticated user in
// the request context.
func setupSettingsTest(user *model.User) (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserRepository)
	userHandler := handler.NewUserHandler(mockRepo)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserKey, user)
		c.Next()
	})
	r.GET("/auth/profile", userHandler.Profile)
	r.PUT("/auth/settings", userHandler.UpdateSettings)

	return r, mockRepo
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegister_Success(t *testing.T) {
	router, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
	mockRepo.On("CreateWithWorkspace", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Workspace")).Return(nil)

	resp := postJSON(router, "/auth/register", handler.RegisterRequest{
		Email:           "a@x.com",
		Password:        "pw12345a",
		ConfirmPassword: "pw12345a",
		Name:            "A",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "A", response.User.Name)
	assert.Equal(t, "a@x.com", response.User.Email)
	assert.Equal(t, model.ThemeLight, response.User.Settings.Theme)

	// The password must never appear in any form
	assert.NotContains(t, resp.Body.String(), "password")
	assert.NotContains(t, resp.Body.String(), "pw12345a")

	// A primary workspace is created atomically with the user
	workspace := mockRepo.Calls[1].Arguments.Get(2).(*model.Workspace)
	assert.Equal(t, model.PrimaryWorkspaceName, workspace.Name)
	assert.Equal(t, model.PrimaryWorkspaceOrder, workspace.Order)

	mockRepo.AssertExpectations(t)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	router, mockRepo := setupUserTest()

	existingUser := &model.User{
		ID:             uuid.New(),
		Email:          "existing@example.com",
		HashedPassword: "hashed_password",
		Name:           "Existing User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(existingUser, nil)

	resp := postJSON(router, "/auth/register", handler.RegisterRequest{
		Email:           "existing@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Name:            "Test User",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User already exists", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	router, mockRepo := setupUserTest()

	resp := postJSON(router, "/auth/register", handler.RegisterRequest{
		Email:           "a@x.com",
		Password:        "pw1",
		ConfirmPassword: "pw1",
		Name:            "A",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Password must be at least 8 characters long")
	mockRepo.AssertNotCalled(t, "CreateWithWorkspace")
}

func TestRegister_PasswordWithoutNumber(t *testing.T) {
	router, mockRepo := setupUserTest()

	resp := postJSON(router, "/auth/register", handler.RegisterRequest{
		Email:           "a@x.com",
		Password:        "passwordonly",
		ConfirmPassword: "passwordonly",
		Name:            "A",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Password must contain a number")
	mockRepo.AssertNotCalled(t, "CreateWithWorkspace")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	router, mockRepo := setupUserTest()

	resp := postJSON(router, "/auth/register", handler.RegisterRequest{
		Email:           "a@x.com",
		Password:        "password123",
		ConfirmPassword: "password124",
		Name:            "A",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Passwords do not match")
	mockRepo.AssertNotCalled(t, "CreateWithWorkspace")
}

func TestLogin_Success(t *testing.T) {
	router, mockRepo := setupUserTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
		Settings:       model.DefaultSettings(),
	}

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	resp := postJSON(router, "/auth/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, testUser.Name, response.User.Name)
	assert.Equal(t, testUser.Email, response.User.Email)
	assert.Equal(t, testUser.ID.String(), response.User.ID)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, mockRepo := setupUserTest()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password1"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
	}

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	resp := postJSON(router, "/auth/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong_password1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	router, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", mock.Anything, "nonexistent@example.com").Return(nil, nil)

	resp := postJSON(router, "/auth/login", handler.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid credentials", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestProfile_ReturnsAuthenticatedUser(t *testing.T) {
	user := &model.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Name:     "Test User",
		Settings: model.Settings{Theme: model.ThemeDark},
	}
	router, _ := setupSettingsTest(user)

	req, _ := http.NewRequest("GET", "/auth/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), user.Email)
	assert.Contains(t, resp.Body.String(), `"theme":"dark"`)
	assert.NotContains(t, resp.Body.String(), "hashedPassword")
}

func TestUpdateSettings_Success(t *testing.T) {
	user := &model.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Name:     "Test User",
		Settings: model.DefaultSettings(),
	}
	router, mockRepo := setupSettingsTest(user)

	mockRepo.On("Update", mock.Anything, user).Return(nil)

	jsonBody, _ := json.Marshal(handler.UpdateSettingsRequest{Theme: "dark"})
	req, _ := http.NewRequest("PUT", "/auth/settings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, model.ThemeDark, user.Settings.Theme)
	mockRepo.AssertExpectations(t)
}

func TestUpdateSettings_InvalidTheme(t *testing.T) {
	user := &model.User{ID: uuid.New(), Settings: model.DefaultSettings()}
	router, mockRepo := setupSettingsTest(user)

	jsonBody, _ := json.Marshal(map[string]string{"theme": "neon"})
	req, _ := http.NewRequest("PUT", "/auth/settings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Theme must be either light or dark")
	mockRepo.AssertNotCalled(t, "Update")
}
