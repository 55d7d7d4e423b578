package application

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-videotube/pkg/apperror"
)

func TestUserService_Register(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	avatar, cover := stage(t, "a.png"), stage(t, "c.png")

	p, err := e.users.Register(ctx, RegisterInput{
		Username:   "  Alice ",
		Email:      "ALICE@example.com",
		FullName:   "Alice A",
		Password:   "secret123",
		Avatar:     avatar,
		CoverImage: cover,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.NotEmpty(t, p.Avatar)
	assert.NotEmpty(t, p.CoverImage)
	assert.Empty(t, p.WatchHistory)

	stored, err := memUsers{e.db}.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret123", stored.Password)
	assert.Empty(t, stored.RefreshToken)

	assert.NoFileExists(t, avatar.Path)
	assert.NoFileExists(t, cover.Path)
	assert.Equal(t, []string{"welcome:alice@example.com"}, e.notifier.sent)
}

func TestUserService_RegisterFailures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "bob")
	uploadsBefore := len(e.media.uploaded)

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		avatar := stage(t, "a.png")
		_, err := e.users.Register(ctx, RegisterInput{
			Username: "bob", Email: "other@example.com", FullName: "B", Password: "secret123", Avatar: avatar,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
		assert.NoFileExists(t, avatar.Path)
		assert.Len(t, e.media.uploaded, uploadsBefore)
	})

	t.Run("blank field is a validation error", func(t *testing.T) {
		_, err := e.users.Register(ctx, RegisterInput{
			Username: "carol", Email: "carol@example.com", FullName: "  ", Password: "secret123", Avatar: stage(t, "a.png"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("missing avatar writes nothing", func(t *testing.T) {
		cover := stage(t, "c.png")
		_, err := e.users.Register(ctx, RegisterInput{
			Username: "dave", Email: "dave@example.com", FullName: "D", Password: "secret123", CoverImage: cover,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		assert.NoFileExists(t, cover.Path)
		_, err = memUsers{e.db}.GetByEmail(ctx, "dave@example.com")
		assert.Error(t, err)
	})

	t.Run("cover upload failure rolls back avatar", func(t *testing.T) {
		e.media.failOn[FolderCovers] = true
		defer delete(e.media.failOn, FolderCovers)
		_, err := e.users.Register(ctx, RegisterInput{
			Username: "erin", Email: "erin@example.com", FullName: "E", Password: "secret123",
			Avatar: stage(t, "a.png"), CoverImage: stage(t, "c.png"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindUpstream))
		require.NotEmpty(t, e.media.deleted)
		assert.Equal(t, e.media.uploaded[len(e.media.uploaded)-1], e.media.deleted[len(e.media.deleted)-1])
		_, err = memUsers{e.db}.GetByEmail(ctx, "erin@example.com")
		assert.Error(t, err)
	})
}

func TestUserService_RegisterNotifierFailureIsBestEffort(t *testing.T) {
	e := newEnv(t)
	e.notifier.failAll = true
	p := e.register(t, "frank")
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, e.logs.AllEntries())
}

func TestUserService_LoginRefreshRotation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "alice")

	_, err := e.users.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	_, err = e.users.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	res, err := e.users.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	first := res.Tokens.RefreshToken

	rotated, err := e.users.Refresh(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated.RefreshToken)

	_, err = e.users.Refresh(ctx, first)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized), "old refresh token must be rejected")

	require.NoError(t, e.users.Logout(ctx, res.User.ID))
	require.NoError(t, e.users.Logout(ctx, res.User.ID))
	_, err = e.users.Refresh(ctx, rotated.RefreshToken)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	_, err = e.users.Refresh(ctx, "garbage")
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestUserService_ChangePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "alice")

	err := e.users.ChangePassword(ctx, u.ID, "secret123", "newsecret1", "different")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	err = e.users.ChangePassword(ctx, u.ID, "wrong", "newsecret1", "newsecret1")
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	require.NoError(t, e.users.ChangePassword(ctx, u.ID, "secret123", "newsecret1", "newsecret1"))
	_, err = e.users.Login(ctx, "alice@example.com", "newsecret1")
	require.NoError(t, err)
	assert.Contains(t, e.notifier.sent, "password_changed:alice@example.com")
}

func TestUserService_UpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	e.register(t, "bob")

	_, err := e.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	taken := "bob@example.com"
	_, err = e.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: &taken})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	name, bio := "Alice Liddell", "down the hole"
	p, err := e.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{FullName: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, name, p.FullName)
	assert.Equal(t, bio, p.Bio)
	assert.Equal(t, "alice@example.com", p.Email)
}

func TestUserService_UpdateImagesReplacesOldObject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "alice")
	oldAvatar := u.Avatar

	_, err := e.users.UpdateImages(ctx, u.ID, nil, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	f := stage(t, "new.png")
	p, err := e.users.UpdateImages(ctx, u.ID, f, nil)
	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, p.Avatar)
	assert.Contains(t, e.media.deleted, oldAvatar)
	_, statErr := os.Stat(f.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUserService_ChannelProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")

	_, err := e.users.ChannelProfile(ctx, alice.ID, "ghost")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	_, err = e.users.ChannelProfile(ctx, alice.ID, " ")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = e.subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	p, err := e.users.ChannelProfile(ctx, alice.ID, "BOB")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SubscribersCount)
	assert.True(t, p.IsSubscribed)

	p, err = e.users.ChannelProfile(ctx, bob.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ChannelsSubscribedToCount)
	assert.False(t, p.IsSubscribed)
}
