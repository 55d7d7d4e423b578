package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/apperror"
	"github.com/oksasatya/go-videotube/pkg/helpers"
	"github.com/oksasatya/go-videotube/pkg/validation"
)

const (
	videoID    = "64b7f0a1c2d3e4f5a6b7c8d9"
	playlistID = "64b7f0a1c2d3e4f5a6b7c8da"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Errors     map[string]string `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, id) }
}

func nullLogger() (*logrus.Logger, *test.Hook) { return test.NewNullLogger() }

type multipartField struct {
	name, filename, body string
}

func multipartBody(t *testing.T, fields ...multipartField) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.filename == "" {
			require.NoError(t, mw.WriteField(f.name, f.body))
			continue
		}
		fw, err := mw.CreateFormFile(f.name, f.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

type stubUsers struct {
	UserUseCases
	register func(context.Context, application.RegisterInput) (*entity.UserProfile, error)
	login    func(context.Context, string, string) (*application.LoginResult, error)
	refresh  func(context.Context, string) (*application.TokenPair, error)
}

func (s stubUsers) Register(ctx context.Context, in application.RegisterInput) (*entity.UserProfile, error) {
	return s.register(ctx, in)
}

func (s stubUsers) Login(ctx context.Context, email, password string) (*application.LoginResult, error) {
	return s.login(ctx, email, password)
}

func (s stubUsers) Refresh(ctx context.Context, token string) (*application.TokenPair, error) {
	return s.refresh(ctx, token)
}

func userRouter(t *testing.T, svc UserUseCases) *gin.Engine {
	logger, _ := nullLogger()
	h := NewUserHandler(svc, helpers.NewCookieManager(helpers.CookieConfig{Path: "/"}), Uploads{Dir: t.TempDir(), MaxBytes: 1 << 20}, logger)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.Refresh)
	return r
}

func TestUserHandler_Register(t *testing.T) {
	var got application.RegisterInput
	svc := stubUsers{register: func(_ context.Context, in application.RegisterInput) (*entity.UserProfile, error) {
		got = in
		return &entity.UserProfile{ID: "u1", Username: in.Username}, nil
	}}
	r := userRouter(t, svc)

	body, ct := multipartBody(t,
		multipartField{name: "username", body: "alice"},
		multipartField{name: "email", body: "alice@example.com"},
		multipartField{name: "fullName", body: "Alice"},
		multipartField{name: "password", body: "password123"},
		multipartField{name: "avatar", filename: "me.PNG", body: "png-bytes"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "me.PNG", got.Avatar.Filename)
	assert.True(t, strings.HasSuffix(got.Avatar.Path, ".png"))
	assert.Nil(t, got.CoverImage)

	staged, err := os.ReadFile(got.Avatar.Path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(staged))
}

func TestUserHandler_RegisterRejectsBadPayload(t *testing.T) {
	called := false
	svc := stubUsers{register: func(context.Context, application.RegisterInput) (*entity.UserProfile, error) {
		called = true
		return nil, nil
	}}
	r := userRouter(t, svc)

	body, ct := multipartBody(t,
		multipartField{name: "username", body: "alice"},
		multipartField{name: "email", body: "not-an-email"},
		multipartField{name: "fullName", body: "Alice"},
		multipartField{name: "password", body: "short"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
	assert.False(t, called)
}

func TestUserHandler_LoginSetsCookies(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	svc := stubUsers{login: func(_ context.Context, email, password string) (*application.LoginResult, error) {
		if password != "password123" {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return &application.LoginResult{
			User:   entity.UserProfile{ID: "u1", Email: email},
			Tokens: application.TokenPair{AccessToken: "at", AccessTokenExpiry: exp, RefreshToken: "rt", RefreshTokenExpiry: exp},
		}, nil
	}}
	r := userRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@example.com","password":"password123"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := map[string]string{}
	for _, ck := range w.Result().Cookies() {
		cookies[ck.Name] = ck.Value
		assert.True(t, ck.HttpOnly)
	}
	assert.Equal(t, "at", cookies[helpers.AccessCookie])
	assert.Equal(t, "rt", cookies[helpers.RefreshCookie])

	var data sessionResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "at", data.AccessToken)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@example.com","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestUserHandler_RefreshPrefersCookie(t *testing.T) {
	var seen []string
	svc := stubUsers{refresh: func(_ context.Context, token string) (*application.TokenPair, error) {
		seen = append(seen, token)
		return &application.TokenPair{AccessToken: "at2", RefreshToken: "rt2", AccessTokenExpiry: time.Now().Add(time.Minute), RefreshTokenExpiry: time.Now().Add(time.Hour)}, nil
	}}
	r := userRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(`{"refreshToken":"from-body"}`))
	req.AddCookie(&http.Cookie{Name: helpers.RefreshCookie, Value: "from-cookie"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh-token", strings.NewReader(`{"refreshToken":"from-body"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"from-cookie", "from-body"}, seen)
}

type stubVideos struct {
	VideoUseCases
	get     func(context.Context, string, string) (*entity.VideoDetail, error)
	publish func(context.Context, string, application.PublishInput) (*entity.Video, error)
}

func (s stubVideos) Get(ctx context.Context, viewerID, id string) (*entity.VideoDetail, error) {
	return s.get(ctx, viewerID, id)
}

func (s stubVideos) Publish(ctx context.Context, ownerID string, in application.PublishInput) (*entity.Video, error) {
	return s.publish(ctx, ownerID, in)
}

func TestVideoHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		err     error
		code    int
		message string
	}{
		{"invalid id", "nope", nil, http.StatusBadRequest, "invalid videoId"},
		{"not found", videoID, apperror.NotFound("video not found"), http.StatusNotFound, "video not found"},
		{"forbidden", videoID, apperror.Forbidden("you are not allowed to update this video"), http.StatusForbidden, "you are not allowed to update this video"},
		{"unknown error", videoID, errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := nullLogger()
			h := NewVideoHandler(stubVideos{get: func(context.Context, string, string) (*entity.VideoDetail, error) {
				return nil, tt.err
			}}, Uploads{}, logger)
			r := gin.New()
			r.GET("/videos/:videoId", asUser("u1"), h.Get)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/"+tt.id, nil))

			assert.Equal(t, tt.code, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
			assert.NotContains(t, w.Body.String(), "socket closed")
			if tt.code == http.StatusInternalServerError {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
			}
		})
	}
}

func TestVideoHandler_PublishDuration(t *testing.T) {
	var got application.PublishInput
	logger, _ := nullLogger()
	h := NewVideoHandler(stubVideos{publish: func(_ context.Context, _ string, in application.PublishInput) (*entity.Video, error) {
		got = in
		return &entity.Video{ID: videoID, Title: in.Title}, nil
	}}, Uploads{Dir: t.TempDir()}, logger)
	r := gin.New()
	r.POST("/publish", asUser("u1"), h.Publish)

	send := func(duration string) *httptest.ResponseRecorder {
		body, ct := multipartBody(t,
			multipartField{name: "title", body: "Intro"},
			multipartField{name: "duration", body: duration},
			multipartField{name: "videoFile", filename: "clip.mp4", body: "mp4"},
			multipartField{name: "thumbnail", filename: "thumb.jpg", body: "jpg"},
		)
		req := httptest.NewRequest(http.MethodPost, "/publish", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("12.5")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 12.5, got.Duration)
	require.NotNil(t, got.VideoFile)
	require.NotNil(t, got.Thumbnail)

	w = send("-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubLikes struct {
	LikeUseCases
	state application.LikeState
}

func (s stubLikes) ToggleVideoLike(context.Context, string, string) (*application.LikeState, error) {
	st := s.state
	return &st, nil
}

func TestLikeHandler_ToggleVideoShape(t *testing.T) {
	logger, _ := nullLogger()
	h := NewLikeHandler(stubLikes{state: application.LikeState{IsLiked: true, TotalLikes: 3}}, logger)
	r := gin.New()
	r.POST("/toggle/v/:videoId", asUser("u1"), h.ToggleVideo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/toggle/v/"+videoID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.Equal(t, "liked", env.Message)
	assert.JSONEq(t, `{"isLiked":true,"totalLikes":3}`, string(env.Data))
}

type stubPlaylists struct {
	PlaylistUseCases
	deleted []string
}

func (s *stubPlaylists) Delete(_ context.Context, actorID, id string) error {
	if actorID != "owner" {
		return apperror.Forbidden("you are not allowed to delete this playlist")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubPlaylists) AddVideo(_ context.Context, _, pid, vid string) (*entity.Playlist, error) {
	return &entity.Playlist{ID: pid, Videos: []string{vid}}, nil
}

func TestPlaylistHandler(t *testing.T) {
	logger, _ := nullLogger()
	svc := &stubPlaylists{}
	h := NewPlaylistHandler(svc, logger)

	r := gin.New()
	r.DELETE("/stranger/:playlistId", asUser("stranger"), h.Delete)
	r.DELETE("/owner/:playlistId", asUser("owner"), h.Delete)
	r.PATCH("/add/:videoId/:playlistId", asUser("owner"), h.AddVideo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/stranger/"+playlistID, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.deleted)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/owner/"+playlistID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{playlistID}, svc.deleted)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/add/"+videoID+"/"+playlistID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var p entity.Playlist
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, playlistID, p.ID)
	assert.Equal(t, []string{videoID}, p.Videos)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/add/bad/"+playlistID, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid videoId", decode(t, w).Message)
}

func TestUploads_StageRejectsMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	u := Uploads{Dir: dir}
	r := gin.New()
	r.POST("/up", func(c *gin.Context) {
		_, err := u.Stage(c, "avatar", "coverImage")
		if err != nil {
			respondError(c, nil, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	body, ct := multipartBody(t,
		multipartField{name: "avatar", filename: "a.png", body: "a"},
		multipartField{name: "coverImage", filename: "b.png", body: "b"},
		multipartField{name: "coverImage", filename: "c.png", body: "c"},
	)
	req := httptest.NewRequest(http.MethodPost, "/up", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploads_TooLarge(t *testing.T) {
	u := Uploads{Dir: t.TempDir(), MaxBytes: 64}
	r := gin.New()
	r.POST("/up", func(c *gin.Context) {
		if _, err := u.Stage(c, "avatar"); err != nil {
			respondError(c, nil, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	body, ct := multipartBody(t, multipartField{name: "avatar", filename: "a.png", body: strings.Repeat("x", 1024)})
	req := httptest.NewRequest(http.MethodPost, "/up", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "upload is too large", decode(t, w).Message)
}
