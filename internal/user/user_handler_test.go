package user

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/response"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	createFn        func(ctx context.Context, callerRole authz.Role, req CreateUserRequest) (*User, error)
	listFn          func(ctx context.Context, q ListUsersQuery) ([]User, int64, error)
	getByUUIDFn     func(ctx context.Context, id uuid.UUID) (*User, error)
	updateFn        func(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, req UpdateUserRequest) (*User, error)
	changeRoleFn    func(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, newRole string) (*User, error)
	deleteFn        func(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID) error
	optionsFn       func(ctx context.Context) ([]UserOption, error)
	updatePictureFn func(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, file *multipart.FileHeader) (*User, error)
}

func (f *fakeService) Create(ctx context.Context, callerRole authz.Role, req CreateUserRequest) (*User, error) {
	return f.createFn(ctx, callerRole, req)
}

func (f *fakeService) List(ctx context.Context, q ListUsersQuery) ([]User, int64, error) {
	return f.listFn(ctx, q)
}

func (f *fakeService) GetByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByUUIDFn(ctx, id)
}

func (f *fakeService) Update(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, req UpdateUserRequest) (*User, error) {
	return f.updateFn(ctx, callerID, callerRole, targetUUID, req)
}

func (f *fakeService) ChangeRole(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, newRole string) (*User, error) {
	return f.changeRoleFn(ctx, callerID, callerRole, targetUUID, newRole)
}

func (f *fakeService) Delete(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID) error {
	return f.deleteFn(ctx, callerID, callerRole, targetUUID)
}

func (f *fakeService) Options(ctx context.Context) ([]UserOption, error) {
	return f.optionsFn(ctx)
}

func (f *fakeService) UpdatePicture(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, file *multipart.FileHeader) (*User, error) {
	return f.updatePictureFn(ctx, callerID, callerRole, targetUUID, file)
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) response.ApiEnvelope {
	t.Helper()
	var envelope response.ApiEnvelope
	assert.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	return envelope
}

func asCaller(id uint, uuidStr, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, id)
		c.Set(middleware.CtxUserUUID, uuidStr)
		c.Set(middleware.CtxRole, role)
	}
}

func TestHandlerCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(_ context.Context, callerRole authz.Role, req CreateUserRequest) (*User, error) {
				assert.Equal(t, authz.RoleHRM, callerRole)
				return &User{
					UUID:       uuid.New(),
					EmployeeID: "EMP007",
					Name:       req.Name,
					Email:      req.Email,
					Role:       req.Role,
				}, nil
			},
		}

		r := gin.New()
		r.POST("/users", asCaller(1, uuid.NewString(), "HRM"), NewHandler(svc).Create)

		body, _ := json.Marshal(CreateUserRequest{
			Name:     "Jane",
			Email:    "jane@corp.test",
			Password: "hunter2hunter2",
			Role:     "EMPLOYEE",
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		envelope := decodeEnvelope(t, w.Body)
		assert.True(t, envelope.Ok)
	})

	t.Run("negative validation error", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(_ context.Context, _ authz.Role, _ CreateUserRequest) (*User, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		r := gin.New()
		r.POST("/users", asCaller(1, uuid.NewString(), "HRM"), NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"email":"nope"}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		envelope := decodeEnvelope(t, w.Body)
		assert.False(t, envelope.Ok)
	})

	t.Run("negative conflict from service", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(_ context.Context, _ authz.Role, _ CreateUserRequest) (*User, error) {
				return nil, usererrors.ErrEmailTaken
			},
		}

		r := gin.New()
		r.POST("/users", asCaller(1, uuid.NewString(), "HRM"), NewHandler(svc).Create)

		body, _ := json.Marshal(CreateUserRequest{
			Name:     "Jane",
			Email:    "jane@corp.test",
			Password: "hunter2hunter2",
			Role:     "EMPLOYEE",
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandlerGet(t *testing.T) {
	selfUUID := uuid.New()

	newRouter := func(svc Service, callerUUID, role string) *gin.Engine {
		r := gin.New()
		r.GET("/users/:uuid", asCaller(1, callerUUID, role), NewHandler(svc).Get)
		return r
	}

	t.Run("self read allowed for any role", func(t *testing.T) {
		svc := &fakeService{
			getByUUIDFn: func(_ context.Context, id uuid.UUID) (*User, error) {
				return &User{UUID: id, Name: "Me"}, nil
			},
		}

		w := httptest.NewRecorder()
		newRouter(svc, selfUUID.String(), "EMPLOYEE").
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+selfUUID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative employee reading someone else", func(t *testing.T) {
		svc := &fakeService{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*User, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		newRouter(svc, selfUUID.String(), "EMPLOYEE").
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("HRM reading someone else", func(t *testing.T) {
		svc := &fakeService{
			getByUUIDFn: func(_ context.Context, id uuid.UUID) (*User, error) {
				return &User{UUID: id, Name: "Other"}, nil
			},
		}

		w := httptest.NewRecorder()
		newRouter(svc, selfUUID.String(), "HRM").
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative malformed uuid", func(t *testing.T) {
		svc := &fakeService{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*User, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		newRouter(svc, selfUUID.String(), "HRM").
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlerList(t *testing.T) {
	svc := &fakeService{
		listFn: func(_ context.Context, q ListUsersQuery) ([]User, int64, error) {
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, 5, q.Limit)
			assert.Equal(t, "jane", q.Search)
			return []User{{UUID: uuid.New(), Name: "Jane"}}, 11, nil
		},
	}

	r := gin.New()
	r.GET("/users", asCaller(1, uuid.NewString(), "HRM"), NewHandler(svc).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?page=2&limit=5&search=jane", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w.Body)
	assert.True(t, envelope.Ok)
	assert.NotNil(t, envelope.Meta)
	assert.Equal(t, int64(11), envelope.Meta.Total)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
}
