package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/models"
	"recipehub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo)}

	app.Get("/users/:id", s.GetUser)

	tests := []struct {
		name           string
		userIDParam    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success",
			userIDParam: "1",
			mockSetup: func() {
				mockRepo.On("GetByIDWithRecipes", mock.Anything, uint(1)).Return(&models.User{
					ID:       1,
					Username: "testuser",
					Recipes:  []models.Recipe{{ID: 3, Title: "Pancakes", UserID: 1}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userIDParam:    "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Not Found",
			userIDParam: "99",
			mockSetup: func() {
				mockRepo.On("GetByIDWithRecipes", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userIDParam, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var detail UserDetail
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
				assert.Equal(t, "testuser", detail.Username)
				require.Len(t, detail.Recipes, 1)
				assert.Equal(t, "Pancakes", detail.Recipes[0].Title)
			}
		})
	}
}

func TestGetUsers(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo)}

	app.Get("/users", s.GetUsers)

	t.Run("Default Pagination", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, 20, 0).Return([]models.User{
			{ID: 1, Username: "alice", Email: "alice@example.com"},
			{ID: 2, Username: "bob", Email: "bob@example.com"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summaries []UserSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "alice", summaries[0].Username)
		assert.Equal(t, uint(2), summaries[1].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Custom Pagination Is Forwarded", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, 5, 10).Return([]models.User{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?limit=5&offset=10", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summaries []UserSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
		assert.Empty(t, summaries)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo)}

	// Middleware to set userID in Locals
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/profile", s.GetProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "me"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "me", user.Username)
}
