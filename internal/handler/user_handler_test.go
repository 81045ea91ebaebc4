package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bistro-api/internal/auth"
	"bistro-api/internal/middleware"
	"bistro-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) PromoteToAdmin(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserHandler_Register(t *testing.T) {
	logger := zerolog.Nop()

	newUser := &model.User{
		ID:        uuid.New(),
		Email:     "alice@example.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *model.User
		mockCreated    bool
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "New registration",
			requestBody:    &model.RegisterRequest{Email: "alice@example.com", Name: "Alice"},
			mockUser:       newUser,
			mockCreated:    true,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Already registered",
			requestBody:    &model.RegisterRequest{Email: "alice@example.com"},
			mockUser:       newUser,
			mockCreated:    false,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing email",
			requestBody:    &model.RegisterRequest{},
			mockError:      errors.New("email is required"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "{invalid",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Service error",
			requestBody:    &model.RegisterRequest{Email: "alice@example.com"},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Register", mock.Anything, mock.AnythingOfType("*model.RegisterRequest")).
					Return(tt.mockUser, tt.mockCreated, tt.mockError)
			}

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/users", &body)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService && tt.mockError == nil && !tt.mockCreated {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "User Already Exists", resp["message"])
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestUserHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	users := []model.User{
		{ID: uuid.New(), Email: "a@example.com"},
		{ID: uuid.New(), Email: "b@example.com", Role: model.RoleAdmin},
	}

	tests := []struct {
		name           string
		mockUsers      []model.User
		mockError      error
		expectedStatus int
		expectedLen    int
	}{
		{
			name:           "Success",
			mockUsers:      users,
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "Empty store returns empty array",
			mockUsers:      nil,
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, logger)

			mockService.On("GetAll", mock.Anything).Return(tt.mockUsers, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp []model.User
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedLen)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestUserHandler_CheckAdmin(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name          string
		pathEmail     string
		claimsEmail   string
		mockIsAdmin   bool
		mockError     error
		expectedAdmin bool
		expectService bool
	}{
		{
			name:          "Own identity, admin",
			pathEmail:     "admin@example.com",
			claimsEmail:   "admin@example.com",
			mockIsAdmin:   true,
			expectedAdmin: true,
			expectService: true,
		},
		{
			name:          "Own identity, not admin",
			pathEmail:     "user@example.com",
			claimsEmail:   "user@example.com",
			mockIsAdmin:   false,
			expectedAdmin: false,
			expectService: true,
		},
		{
			name:          "Probing another identity",
			pathEmail:     "admin@example.com",
			claimsEmail:   "mallory@example.com",
			expectedAdmin: false,
			expectService: false,
		},
		{
			name:          "No claims in context",
			pathEmail:     "admin@example.com",
			claimsEmail:   "",
			expectedAdmin: false,
			expectService: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, logger)

			if tt.expectService {
				mockService.On("IsAdmin", mock.Anything, tt.pathEmail).Return(tt.mockIsAdmin, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tt.pathEmail, nil)
			req.SetPathValue("email", tt.pathEmail)
			if tt.claimsEmail != "" {
				req = req.WithContext(middleware.ContextWithClaims(req.Context(), &auth.Claims{Email: tt.claimsEmail}))
			}
			w := httptest.NewRecorder()

			handler.CheckAdmin(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp map[string]bool
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedAdmin, resp["admin"])

			mockService.AssertExpectations(t)
			if !tt.expectService {
				mockService.AssertNotCalled(t, "IsAdmin", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUserHandler_PromoteToAdmin(t *testing.T) {
	logger := zerolog.Nop()

	userID := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		mockUpdated    int64
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			pathID:         userID.String(),
			mockUpdated:    1,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown user",
			pathID:         userID.String(),
			mockUpdated:    0,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid ID",
			pathID:         "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Service error",
			pathID:         userID.String(),
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, logger)

			if tt.expectService {
				mockService.On("PromoteToAdmin", mock.Anything, userID).Return(tt.mockUpdated, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPatch, "/users/admin/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.PromoteToAdmin(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp map[string]int64
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.mockUpdated, resp["updatedCount"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
