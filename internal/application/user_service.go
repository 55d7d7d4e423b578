package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

type UserService struct {
	Users    repo.UserRepository
	Views    repo.ViewRepository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Media    MediaStore
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, views repo.ViewRepository, hasher PasswordHasher, tokens TokenIssuer, media MediaStore, notifier Notifier, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:    users,
		Views:    views,
		Hasher:   hasher,
		Tokens:   tokens,
		Media:    media,
		Notifier: notifier,
		Logger:   logger,
	}
}

type TokenPair struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessTokenExpiry"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshTokenExpiry"`
}

type LoginResult struct {
	User   entity.UserProfile
	Tokens TokenPair
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Bio        string
	Avatar     *LocalFile
	CoverImage *LocalFile
}

// UpdateProfileInput merges only the non-nil fields.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
	Bio      *string
}

func normalizeUsername(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
func normalizeEmail(s string) string    { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a user after the uniqueness check and the avatar upload. No record is written
// if an upload fails; staged files are removed on every path.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.UserProfile, error) {
	defer discard(in.Avatar, in.CoverImage)

	username := normalizeUsername(in.Username)
	email := normalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperror.Validation("all fields are required")
	}

	exists, err := s.Users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	if exists {
		return nil, apperror.Conflict("user with email or username already exists")
	}

	if in.Avatar == nil {
		return nil, apperror.Validation("avatar file is required")
	}
	avatar, err := uploadAndDiscard(ctx, s.Media, in.Avatar, FolderAvatars)
	if err != nil {
		return nil, err
	}
	var cover Asset
	if in.CoverImage != nil {
		cover, err = uploadAndDiscard(ctx, s.Media, in.CoverImage, FolderCovers)
		if err != nil {
			deleteAssets(ctx, s.Media, s.Logger, avatar.URL)
			return nil, err
		}
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		deleteAssets(ctx, s.Media, s.Logger, avatar.URL, cover.URL)
		return nil, apperror.Internal("failed to hash password", err)
	}

	u := &entity.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hash,
		Bio:        strings.TrimSpace(in.Bio),
		Avatar:     avatar.URL,
		CoverImage: cover.URL,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		deleteAssets(ctx, s.Media, s.Logger, avatar.URL, cover.URL)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict("user with email or username already exists")
		}
		return nil, apperror.Internal("something went wrong while registering the user", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.Welcome(ctx, u); err != nil {
			bestEffortFailed(s.Logger, "welcome_email", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	p := u.Profile()
	return &p, nil
}

// Login verifies credentials, then issues and persists a fresh token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fromStore(err, "user does not exist")
	}
	if !s.Hasher.Compare(u.Password, password) {
		return nil, apperror.Unauthorized("invalid user credentials")
	}
	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u.Profile(), Tokens: pair}, nil
}

// issuePair signs both tokens and stores the refresh token, replacing any prior session.
func (s *UserService) issuePair(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.Tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return TokenPair{}, apperror.Internal("failed to generate access token", err)
	}
	refresh, rexp, err := s.Tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, apperror.Internal("failed to generate refresh token", err)
	}
	if err := s.Users.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, fromStore(err, "user not found")
	}
	u.RefreshToken = refresh
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Logout removes the stored refresh token; any outstanding refresh token stops working.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	err := s.Users.ClearRefreshToken(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fromStore(err, "user not found")
	}
	return nil
}

// Refresh rotates the pair when token is exactly the stored refresh token.
func (s *UserService) Refresh(ctx context.Context, token string) (*TokenPair, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperror.Unauthorized("unauthorized request")
	}
	claims, err := s.Tokens.ParseRefreshToken(token)
	if err != nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid refresh token")
		}
		return nil, fromStore(err, "user not found")
	}
	if u.RefreshToken == "" || u.RefreshToken != token {
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}
	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// ChangePassword writes only the password hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return apperror.Validation("old, new and confirm password are required")
	}
	if newPassword != confirmPassword {
		return apperror.Validation("new password and confirm password must match")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fromStore(err, "user not found")
	}
	if !s.Hasher.Compare(u.Password, oldPassword) {
		return apperror.Unauthorized("invalid old password")
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return fromStore(err, "user not found")
	}
	if s.Notifier != nil {
		if err := s.Notifier.PasswordChanged(ctx, u); err != nil {
			bestEffortFailed(s.Logger, "password_changed_email", err, logrus.Fields{"user_id": u.ID})
		}
	}
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	p := u.Profile()
	return &p, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.UserProfile, error) {
	if in.FullName == nil && in.Email == nil && in.Bio == nil {
		return nil, apperror.Validation("at least one of fullName, email or bio is required")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperror.Validation("fullName cannot be blank")
		}
		u.FullName = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, apperror.Validation("email cannot be blank")
		}
		if email != u.Email {
			other, err := s.Users.GetByEmail(ctx, email)
			switch {
			case err == nil && other.ID != u.ID:
				return nil, apperror.Conflict("email is already in use")
			case err != nil && !errors.Is(err, repo.ErrNotFound):
				return nil, fromStore(err, "user not found")
			}
		}
		u.Email = email
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict("email is already in use")
		}
		return nil, fromStore(err, "user not found")
	}
	p := u.Profile()
	return &p, nil
}

// UpdateImages replaces whichever images are provided. Old objects are deleted once the record
// points at the new ones.
func (s *UserService) UpdateImages(ctx context.Context, userID string, avatar, cover *LocalFile) (*entity.UserProfile, error) {
	defer discard(avatar, cover)
	if avatar == nil && cover == nil {
		return nil, apperror.Validation("avatar or coverImage file is required")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}

	var uploaded, replaced []string
	if avatar != nil {
		a, err := uploadAndDiscard(ctx, s.Media, avatar, FolderAvatars)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, a.URL)
		replaced = append(replaced, u.Avatar)
		u.Avatar = a.URL
	}
	if cover != nil {
		c, err := uploadAndDiscard(ctx, s.Media, cover, FolderCovers)
		if err != nil {
			deleteAssets(ctx, s.Media, s.Logger, uploaded...)
			return nil, err
		}
		uploaded = append(uploaded, c.URL)
		replaced = append(replaced, u.CoverImage)
		u.CoverImage = c.URL
	}

	if err := s.Users.Update(ctx, u); err != nil {
		deleteAssets(ctx, s.Media, s.Logger, uploaded...)
		return nil, fromStore(err, "user not found")
	}
	deleteAssets(ctx, s.Media, s.Logger, replaced...)
	p := u.Profile()
	return &p, nil
}

func (s *UserService) ChannelProfile(ctx context.Context, viewerID, username string) (*entity.ChannelProfile, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, apperror.Validation("username is missing")
	}
	p, err := s.Views.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, fromStore(err, "channel does not exist")
	}
	return p, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID string) ([]entity.VideoCard, error) {
	h, err := s.Views.WatchHistory(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "user not found")
	}
	return h, nil
}
