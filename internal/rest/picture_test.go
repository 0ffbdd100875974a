package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/pkg/token"
	"github.com/Guyuepp/picshare/internal/rest"
	"github.com/Guyuepp/picshare/internal/rest/middleware"
	"github.com/Guyuepp/picshare/internal/rest/mocks"
	"github.com/Guyuepp/picshare/internal/rest/request"
	"github.com/Guyuepp/picshare/internal/rest/response"
)

const jwtSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		panic(err)
	}
}

func newPictureRouter(svc domain.PictureUsecase) *gin.Engine {
	h := rest.NewPictureHandler(svc)
	r := gin.New()
	r.GET("/pictures", h.Fetch)
	r.GET("/pictures/popular", h.FetchPopular)
	r.GET("/pictures/:id", middleware.OptionalAuth(jwtSecret), h.GetByID)
	r.GET("/pictures/:id/likes", h.GetLikes)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtSecret))
	{
		authorized.GET("/pictures/personalized", h.FetchPersonalized)
		authorized.POST("/pictures", h.Store)
		authorized.PATCH("/pictures/:id/tags", h.UpdateTags)
		authorized.DELETE("/pictures/:id", h.Delete)
		authorized.PATCH("/pictures/:id/voteup", h.VoteUp)
		authorized.PATCH("/pictures/:id/votedown", h.VoteDown)
	}
	return r
}

func authHeader(t *testing.T, accountID int64) string {
	t.Helper()
	signed, err := token.Generate([]byte(jwtSecret), accountID, faker.Username(), time.Hour)
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(r http.Handler, method, target, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func likedPicture() domain.Picture {
	return domain.Picture{
		ID:              1,
		Account:         domain.Account{ID: 9, Nickname: "owner"},
		Name:            "sunset",
		Tags:            []domain.Tag{{ID: 5, Value: "sky"}},
		Likes:           []domain.Like{{AccountID: 42, PictureID: 1, IsLike: true}},
		PopularityScore: 10,
	}
}

func TestVoteUp(t *testing.T) {
	svc := mocks.NewPictureUsecase(t)
	svc.On("Like", mock.Anything, int64(1), int64(42)).Return(likedPicture(), nil).Once()

	rec := do(newPictureRouter(svc), http.MethodPatch, "/pictures/1/voteup", "", authHeader(t, 42))
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.Picture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "liked", got.State)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(10), got.Score)
	assert.Equal(t, []string{"sky"}, got.Tags)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Nickname)
}

func TestVoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		auth   bool
		err    error
		code   int
	}{
		{name: "unauthenticated", target: "/pictures/1/voteup", code: http.StatusUnauthorized},
		{name: "bad id", target: "/pictures/abc/votedown", auth: true, code: http.StatusNotFound},
		{name: "missing picture", target: "/pictures/404/votedown", auth: true, err: domain.ErrNotFound, code: http.StatusNotFound},
		{name: "storage failure", target: "/pictures/1/votedown", auth: true, err: domain.ErrStorage, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewPictureUsecase(t)
			if tt.err != nil {
				svc.On("DisLike", mock.Anything, mock.Anything, int64(42)).Return(domain.Picture{}, tt.err).Once()
			}
			auth := ""
			if tt.auth {
				auth = authHeader(t, 42)
			}

			rec := do(newPictureRouter(svc), http.MethodPatch, tt.target, "", auth)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusInternalServerError {
				assert.Contains(t, rec.Body.String(), domain.ErrInternalServerError.Error())
			}
		})
	}
}

func TestGetByIDShowsViewerState(t *testing.T) {
	svc := mocks.NewPictureUsecase(t)
	svc.On("GetByID", mock.Anything, int64(1)).Return(likedPicture(), nil).Twice()
	r := newPictureRouter(svc)

	var got response.Picture
	rec := do(r, http.MethodGet, "/pictures/1", "", authHeader(t, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "liked", got.State)

	rec = do(r, http.MethodGet, "/pictures/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "none", got.State)
}

func TestStore(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := mocks.NewPictureUsecase(t)
		svc.On("Store", mock.Anything, mock.MatchedBy(func(p *domain.Picture) bool {
			return p.Account.ID == 42 && p.Name == "sunset"
		}), []string{"sky", "sea"}).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Picture)
			p.ID = 3
			p.Tags = []domain.Tag{{ID: 5, Value: "sky"}, {ID: 6, Value: "sea"}}
		}).Return(nil).Once()

		body := `{"name":"sunset","url":"https://img.example.com/3.webp","tags":["sky","sea"]}`
		rec := do(newPictureRouter(svc), http.MethodPost, "/pictures", body, authHeader(t, 42))
		require.Equal(t, http.StatusCreated, rec.Code)

		var got response.Picture
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "none", got.State)
	})

	t.Run("validation", func(t *testing.T) {
		bodies := []string{
			`{"name":"abc","url":"https://img.example.com/3.webp"}`,
			`{"name":"sunset","url":"nope"}`,
			`{"name":"sunset","url":"https://img.example.com/3.webp","tags":["a","b","c","d","e"]}`,
			`{"name":"sunset","url":"https://img.example.com/3.webp","tags":["` + strings.Repeat("x", 26) + `"]}`,
		}
		for _, body := range bodies {
			svc := mocks.NewPictureUsecase(t)
			rec := do(newPictureRouter(svc), http.MethodPost, "/pictures", body, authHeader(t, 42))
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})
}

func TestDeleteAndUpdateTagsForbidden(t *testing.T) {
	svc := mocks.NewPictureUsecase(t)
	svc.On("Delete", mock.Anything, int64(1), int64(42)).Return(domain.ErrForbidden).Once()
	svc.On("UpdateTags", mock.Anything, int64(1), int64(42), []string{"sky"}).Return(domain.Picture{}, domain.ErrForbidden).Once()
	r := newPictureRouter(svc)

	rec := do(r, http.MethodDelete, "/pictures/1", "", authHeader(t, 42))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, http.MethodPatch, "/pictures/1/tags", `{"tags":["sky"]}`, authHeader(t, 42))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFeeds(t *testing.T) {
	list := []domain.Picture{likedPicture()}
	svc := mocks.NewPictureUsecase(t)
	svc.On("Fetch", mock.Anything, "abc", int64(rest.DefaultPageNum)).Return(list, "next", nil).Once()
	svc.On("FetchPopular", mock.Anything, int64(20), int64(15)).Return(list, nil).Once()
	svc.On("FetchPersonalized", mock.Anything, int64(42), int64(rest.DefaultPageNum)).Return(list, nil).Once()
	r := newPictureRouter(svc)

	rec := do(r, http.MethodGet, "/pictures?cursor=abc&num=1000", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "next", rec.Header().Get("X-Cursor"))

	rec = do(r, http.MethodGet, "/pictures/popular?offset=20&num=15", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []response.PictureSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].Score)

	rec = do(r, http.MethodGet, "/pictures/personalized", "", authHeader(t, 42))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/pictures/personalized", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetLikes(t *testing.T) {
	svc := mocks.NewPictureUsecase(t)
	svc.On("GetLikes", mock.Anything, int64(1)).Return([]domain.Like{
		{AccountID: 2, PictureID: 1, IsLike: true},
		{AccountID: 3, PictureID: 1, IsLike: false},
	}, nil).Once()

	rec := do(newPictureRouter(svc), http.MethodGet, "/pictures/1/likes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []response.Like
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.False(t, got[1].IsLike)
}
