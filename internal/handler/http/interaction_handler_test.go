package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/classbrand/brandnet/internal/domain/entity"
	handler "github.com/classbrand/brandnet/internal/handler/http"
	dto "github.com/classbrand/brandnet/internal/handler/http/dto"
	"github.com/classbrand/brandnet/internal/handler/http/middleware"
	mocks "github.com/classbrand/brandnet/internal/handler/http/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interactionFixture struct {
	router *gin.Engine
	users  *mocks.MockUserUsecase
	brands *mocks.MockBrandUsecase
	toggle *mocks.MockToggleUsecase
}

func newInteractionFixture() interactionFixture {
	users := mocks.NewMockUserUsecase()
	brands := mocks.NewMockBrandUsecase(entity.Brand{ID: "b1", OwnerID: "owner-1", Name: "Campus Coffee"})
	toggle := mocks.NewMockToggleUsecase()

	h := handler.NewInteractionHandler(toggle, brands)
	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleWare(users))
	protected.POST("/brands/:brandID/follow", h.FollowBrandHandler)
	protected.POST("/brands/:brandID/like", h.LikeBrandHandler)
	return interactionFixture{router: r, users: users, brands: brands, toggle: toggle}
}

func (f interactionFixture) post(path string) (int, dto.ToggleResponse, string) {
	w := postJSON(f.router, path, nil, "Authorization", "Bearer mock_access_token")
	var resp dto.ToggleResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp, w.Body.String()
}

func TestLikeBrand_TogglesAndReportsMembership(t *testing.T) {
	f := newInteractionFixture()

	code, resp, _ := f.post("/brands/b1/like")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.IsMember)
	assert.Equal(t, "Liked!", resp.Message)
	assert.Equal(t, "liker", resp.Relation)

	code, resp, _ = f.post("/brands/b1/like")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.IsMember)
	assert.Equal(t, "Like removed", resp.Message)

	require.Len(t, f.toggle.Calls, 2)
	assert.Equal(t, mocks.ToggleCall{BrandID: "b1", ActorID: "mock-user-id", Relation: entity.RelationLiker, OwnerID: "owner-1"}, f.toggle.Calls[0])
}

func TestFollowBrand_Messages(t *testing.T) {
	f := newInteractionFixture()

	_, resp, _ := f.post("/brands/b1/follow")
	assert.Equal(t, "Following!", resp.Message)
	_, resp, _ = f.post("/brands/b1/follow")
	assert.Equal(t, "Unfollowed", resp.Message)
}

func TestToggle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{entity.ErrSelfRelation, http.StatusBadRequest},
		{entity.ErrInvalidRelation, http.StatusBadRequest},
		{entity.ErrBrandNotFound, http.StatusNotFound},
		{fmt.Errorf("retries exhausted: %w", entity.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: server selection timeout", entity.ErrStoreUnavailable), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newInteractionFixture()
			f.toggle.Err = tt.err

			code, _, body := f.post("/brands/b1/like")
			assert.Equal(t, tt.status, code)
			assert.Contains(t, body, `"error"`)
		})
	}
}

func TestToggle_UsesCachedOwnerWithoutReadingBrand(t *testing.T) {
	f := newInteractionFixture()

	code, _, _ := f.post("/brands/b1/follow")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, f.toggle.Calls, 1)
	assert.Equal(t, "owner-1", f.toggle.Calls[0].OwnerID)
	assert.Zero(t, f.brands.GetCalls)
}

func TestToggle_UncachedOwnerIsLeftToTransaction(t *testing.T) {
	f := newInteractionFixture()
	delete(f.brands.Owners, "b1")

	code, _, _ := f.post("/brands/b1/like")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, f.toggle.Calls, 1)
	assert.Empty(t, f.toggle.Calls[0].OwnerID)
	assert.Zero(t, f.brands.GetCalls)
}

func TestToggle_UnknownBrandIsNotFound(t *testing.T) {
	f := newInteractionFixture()
	f.toggle.Err = entity.ErrBrandNotFound

	code, _, _ := f.post("/brands/missing/follow")
	assert.Equal(t, http.StatusNotFound, code)
	require.Len(t, f.toggle.Calls, 1)
	assert.Empty(t, f.toggle.Calls[0].OwnerID)
}

func TestToggle_RequiresActiveUser(t *testing.T) {
	f := newInteractionFixture()

	w := postJSON(f.router, "/brands/b1/like", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	f.users.AuthenticateErr = entity.ErrUserBanned
	w = postJSON(f.router, "/brands/b1/like", nil, "Authorization", "Bearer mock_access_token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.toggle.Calls)
}
