package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	repo "github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// memDB is an in-memory store shared by the fake repositories. Every method takes the lock, so the
// fakes are safe for the concurrency tests.
type memDB struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*entity.User
	videos    map[string]*entity.Video
	comments  map[string]*entity.Comment
	likes     []entity.Like
	subs      []entity.Subscription
	playlists map[string]*entity.Playlist
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[string]*entity.User{},
		videos:    map[string]*entity.Video{},
		comments:  map[string]*entity.Comment{},
		playlists: map[string]*entity.Playlist{},
	}
}

func (db *memDB) nextID() string {
	db.seq++
	return fmt.Sprintf("%024x", db.seq)
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.users {
		if o.Username == u.Username || o.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = r.db.nextID()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	cp.WatchHistory = slices.Clone(u.WatchHistory)
	return &cp, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) mutate(id string, fn func(u *entity.User)) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

func (r memUsers) Update(_ context.Context, in *entity.User) error {
	return r.mutate(in.ID, func(u *entity.User) {
		u.FullName, u.Email, u.Bio, u.Avatar, u.CoverImage = in.FullName, in.Email, in.Bio, in.Avatar, in.CoverImage
	})
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	return r.mutate(id, func(u *entity.User) { u.Password = hash })
}

func (r memUsers) SetRefreshToken(_ context.Context, id, token string) error {
	return r.mutate(id, func(u *entity.User) { u.RefreshToken = token })
}

func (r memUsers) ClearRefreshToken(_ context.Context, id string) error {
	return r.mutate(id, func(u *entity.User) { u.RefreshToken = "" })
}

func (r memUsers) AppendWatchHistory(_ context.Context, id, videoID string) error {
	return r.mutate(id, func(u *entity.User) {
		u.WatchHistory = append(slices.DeleteFunc(u.WatchHistory, func(v string) bool { return v == videoID }), videoID)
	})
}

type memVideos struct{ db *memDB }

func (r memVideos) Create(_ context.Context, v *entity.Video) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v.ID = r.db.nextID()
	v.CreatedAt, v.UpdatedAt = time.Now(), time.Now()
	cp := *v
	r.db.videos[v.ID] = &cp
	return nil
}

func (r memVideos) GetByID(_ context.Context, id string) (*entity.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r memVideos) Update(_ context.Context, in *entity.Video) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[in.ID]
	if !ok {
		return repo.ErrNotFound
	}
	v.Title, v.Description, v.Thumbnail, v.IsPublished = in.Title, in.Description, in.Thumbnail, in.IsPublished
	v.UpdatedAt = time.Now()
	return nil
}

func (r memVideos) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.videos[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.db.videos, id)
	return nil
}

func (r memVideos) IncrementViews(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return repo.ErrNotFound
	}
	v.Views++
	return nil
}

type memComments struct{ db *memDB }

func (r memComments) Create(_ context.Context, c *entity.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.nextID()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	r.db.comments[c.ID] = &cp
	return nil
}

func (r memComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memComments) UpdateContent(_ context.Context, id, content string) (*entity.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (r memComments) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.db.comments, id)
	return nil
}

func (r memComments) DeleteByVideo(_ context.Context, videoID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []string
	for id, c := range r.db.comments {
		if c.Video == videoID {
			ids = append(ids, id)
			delete(r.db.comments, id)
		}
	}
	return ids, nil
}

type memLikes struct{ db *memDB }

func (r memLikes) Insert(_ context.Context, l *entity.Like) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.likes {
		if o.LikedBy == l.LikedBy && o.Target == l.Target {
			return repo.ErrDuplicate
		}
	}
	l.ID = r.db.nextID()
	l.CreatedAt = time.Now()
	r.db.likes = append(r.db.likes, *l)
	return nil
}

func (r memLikes) Delete(_ context.Context, likedBy string, target entity.LikeTarget) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := len(r.db.likes)
	r.db.likes = slices.DeleteFunc(r.db.likes, func(l entity.Like) bool {
		return l.LikedBy == likedBy && l.Target == target
	})
	return len(r.db.likes) < n, nil
}

func (r memLikes) CountByTarget(_ context.Context, target entity.LikeTarget) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, l := range r.db.likes {
		if l.Target == target {
			n++
		}
	}
	return n, nil
}

func (r memLikes) DeleteByTargets(_ context.Context, targets ...entity.LikeTarget) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.likes = slices.DeleteFunc(r.db.likes, func(l entity.Like) bool {
		return slices.Contains(targets, l.Target)
	})
	return nil
}

type memSubs struct{ db *memDB }

func (r memSubs) Insert(_ context.Context, s *entity.Subscription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.subs {
		if o.Subscriber == s.Subscriber && o.Channel == s.Channel {
			return repo.ErrDuplicate
		}
	}
	s.ID = r.db.nextID()
	s.CreatedAt = time.Now()
	r.db.subs = append(r.db.subs, *s)
	return nil
}

func (r memSubs) Delete(_ context.Context, subscriber, channel string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := len(r.db.subs)
	r.db.subs = slices.DeleteFunc(r.db.subs, func(s entity.Subscription) bool {
		return s.Subscriber == subscriber && s.Channel == channel
	})
	return len(r.db.subs) < n, nil
}

func (r memSubs) CountByChannel(_ context.Context, channel string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, s := range r.db.subs {
		if s.Channel == channel {
			n++
		}
	}
	return n, nil
}

type memPlaylists struct{ db *memDB }

func (r memPlaylists) Create(_ context.Context, p *entity.Playlist) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.ID = r.db.nextID()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	cp := *p
	cp.Videos = slices.Clone(p.Videos)
	r.db.playlists[p.ID] = &cp
	return nil
}

func (r memPlaylists) get(id string) (*entity.Playlist, error) {
	p, ok := r.db.playlists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	cp.Videos = slices.Clone(p.Videos)
	return &cp, nil
}

func (r memPlaylists) GetByID(_ context.Context, id string) (*entity.Playlist, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.get(id)
}

func (r memPlaylists) ListByOwner(_ context.Context, owner string) ([]entity.Playlist, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.Playlist{}
	for _, p := range r.db.playlists {
		if p.Owner == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r memPlaylists) Update(_ context.Context, in *entity.Playlist) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[in.ID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Name, p.Description = in.Name, in.Description
	return nil
}

func (r memPlaylists) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.playlists[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.db.playlists, id)
	return nil
}

func (r memPlaylists) AddVideo(_ context.Context, pid, vid string) (*entity.Playlist, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[pid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Videos = append(p.Videos, vid)
	return r.get(pid)
}

func (r memPlaylists) RemoveVideo(_ context.Context, pid, vid string) (*entity.Playlist, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[pid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Videos = slices.DeleteFunc(p.Videos, func(v string) bool { return v == vid })
	return r.get(pid)
}

// memViews composes the read models from the same maps, enough for service-level assertions.
type memViews struct{ db *memDB }

func (r memViews) owner(id string) *entity.OwnerSummary {
	u, ok := r.db.users[id]
	if !ok {
		return nil
	}
	return &entity.OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

func (r memViews) card(v *entity.Video) entity.VideoCard {
	return entity.VideoCard{
		ID: v.ID, VideoFile: v.VideoFile, Thumbnail: v.Thumbnail, Title: v.Title,
		Description: v.Description, Duration: v.Duration, Views: v.Views,
		IsPublished: v.IsPublished, CreatedAt: v.CreatedAt, Owner: r.owner(v.Owner),
	}
}

func (r memViews) countSubs(channel, subscriber string) (subscribers, subscribed int64, isSub bool) {
	for _, s := range r.db.subs {
		if s.Channel == channel {
			subscribers++
			if s.Subscriber == subscriber {
				isSub = true
			}
		}
		if s.Subscriber == channel {
			subscribed++
		}
	}
	return
}

func (r memViews) ChannelProfile(_ context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username != username {
			continue
		}
		subscribers, subscribed, isSub := r.countSubs(u.ID, viewerID)
		return &entity.ChannelProfile{
			ID: u.ID, Username: u.Username, FullName: u.FullName, Bio: u.Bio,
			Avatar: u.Avatar, CoverImage: u.CoverImage, CreatedAt: u.CreatedAt,
			SubscribersCount: subscribers, ChannelsSubscribedToCount: subscribed, IsSubscribed: isSub,
		}, nil
	}
	return nil, repo.ErrNotFound
}

func (r memViews) WatchHistory(_ context.Context, userID string) ([]entity.VideoCard, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := []entity.VideoCard{}
	for _, id := range u.WatchHistory {
		if v, ok := r.db.videos[id]; ok {
			out = append(out, r.card(v))
		}
	}
	return out, nil
}

func (r memViews) VideoDetail(_ context.Context, videoID string) (*entity.VideoDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[videoID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	d := &entity.VideoDetail{
		ID: v.ID, VideoFile: v.VideoFile, Thumbnail: v.Thumbnail, Title: v.Title,
		Description: v.Description, Duration: v.Duration, Views: v.Views,
		IsPublished: v.IsPublished, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
	if u, ok := r.db.users[v.Owner]; ok {
		subscribers, subscribed, _ := r.countSubs(u.ID, "")
		d.Owner = &entity.VideoOwner{
			ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar, Bio: u.Bio,
			SubscribersCount: subscribers, SubscribedCount: subscribed,
		}
	}
	return d, nil
}

func (r memViews) PlaylistDetail(_ context.Context, playlistID string) (*entity.PlaylistDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.playlists[playlistID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	d := &entity.PlaylistDetail{
		ID: p.ID, Name: p.Name, Description: p.Description, Owner: r.owner(p.Owner),
		Videos: []entity.PlaylistVideo{}, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	for _, id := range p.Videos {
		if v, ok := r.db.videos[id]; ok {
			d.Videos = append(d.Videos, entity.PlaylistVideo{ID: v.ID, Title: v.Title, Thumbnail: v.Thumbnail})
		}
	}
	return d, nil
}

func (r memViews) VideoComments(_ context.Context, videoID string, page, limit int) ([]entity.CommentView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []entity.CommentView
	for _, c := range r.db.comments {
		if c.Video == videoID {
			all = append(all, entity.CommentView{ID: c.ID, Content: c.Content, Video: c.Video, CreatedAt: c.CreatedAt})
		}
	}
	slices.SortFunc(all, func(a, b entity.CommentView) int { return -compareIDs(a.ID, b.ID) })
	start := (page - 1) * limit
	if start >= len(all) {
		return []entity.CommentView{}, nil
	}
	return all[start:min(start+limit, len(all))], nil
}

func compareIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r memViews) LikedVideos(_ context.Context, userID string) ([]entity.LikedVideo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.LikedVideo{}
	for _, l := range r.db.likes {
		if l.LikedBy != userID || l.Target.Kind() != entity.LikeTargetVideo {
			continue
		}
		if v, ok := r.db.videos[l.Target.ID()]; ok {
			c := r.card(v)
			out = append(out, entity.LikedVideo{ID: l.ID, LikedAt: l.CreatedAt, Video: &c})
		}
	}
	return out, nil
}

func (r memViews) SubscribedChannels(_ context.Context, userID string) ([]entity.SubscribedChannel, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.SubscribedChannel{}
	for _, s := range r.db.subs {
		if s.Subscriber == userID {
			out = append(out, entity.SubscribedChannel{ID: s.ID, SubscribedAt: s.CreatedAt, Channel: r.owner(s.Channel)})
		}
	}
	return out, nil
}

// fakeMedia hands out deterministic URLs and records deletions.
type fakeMedia struct {
	mu       sync.Mutex
	n        int
	failOn   map[string]bool
	uploaded []string
	deleted  []string
}

func (m *fakeMedia) Upload(_ context.Context, f LocalFile, folder string) (Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[folder] {
		return Asset{}, errors.New("bucket unavailable")
	}
	m.n++
	url := fmt.Sprintf("https://storage.googleapis.com/test/%s/%d-%s", folder, m.n, f.Filename)
	m.uploaded = append(m.uploaded, url)
	return Asset{URL: url}, nil
}

func (m *fakeMedia) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, url)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "hashed:"+p }

type recordingNotifier struct {
	mu      sync.Mutex
	sent    []string
	failAll bool
}

func (n *recordingNotifier) record(kind string, u *entity.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failAll {
		return errors.New("broker down")
	}
	n.sent = append(n.sent, kind+":"+u.Email)
	return nil
}

func (n *recordingNotifier) Welcome(_ context.Context, u *entity.User) error {
	return n.record("welcome", u)
}

func (n *recordingNotifier) PasswordChanged(_ context.Context, u *entity.User) error {
	return n.record("password_changed", u)
}

// fakeIndex keeps indexed videos in a map.
type fakeIndex struct {
	mu   sync.Mutex
	docs map[string]entity.Video
	err  error
}

func (f *fakeIndex) IndexVideo(_ context.Context, v *entity.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.docs == nil {
		f.docs = map[string]entity.Video{}
	}
	if !v.IsPublished {
		delete(f.docs, v.ID)
		return nil
	}
	f.docs[v.ID] = *v
	return nil
}

func (f *fakeIndex) DeleteVideo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return f.err
}

func (f *fakeIndex) SearchVideos(_ context.Context, _ string, page, limit int) (*SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := &SearchPage{Page: page, Limit: limit, Videos: []entity.Video{}}
	for _, v := range f.docs {
		out.Videos = append(out.Videos, v)
	}
	out.Total = int64(len(out.Videos))
	return out, nil
}

// env wires every service over one memDB.
type env struct {
	db       *memDB
	media    *fakeMedia
	notifier *recordingNotifier
	index    *fakeIndex
	logs     *test.Hook

	users     *UserService
	videos    *VideoService
	comments  *CommentService
	likes     *LikeService
	subs      *SubscriptionService
	playlists *PlaylistService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newMemDB()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e := &env{
		db:       db,
		media:    &fakeMedia{failOn: map[string]bool{}},
		notifier: &recordingNotifier{},
		index:    &fakeIndex{},
		logs:     hook,
	}
	users, videos, comments := memUsers{db}, memVideos{db}, memComments{db}
	likes, subs, playlists, views := memLikes{db}, memSubs{db}, memPlaylists{db}, memViews{db}
	tokens := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	e.users = NewUserService(users, views, plainHasher{}, tokens, e.media, e.notifier, logger)
	e.videos = NewVideoService(videos, comments, likes, users, views, e.media, e.index, logger)
	e.comments = NewCommentService(comments, videos, likes, views, logger)
	e.likes = NewLikeService(likes, videos, comments, views, logger)
	e.subs = NewSubscriptionService(subs, users, views, logger)
	e.playlists = NewPlaylistService(playlists, videos, views, logger)
	return e
}

// stage writes a throwaway file the way the upload handler does.
func stage(t *testing.T, name string) *LocalFile {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("payload"), 0o600))
	return &LocalFile{Path: p, Filename: name, ContentType: "application/octet-stream", Size: 7}
}

func (e *env) register(t *testing.T, username string) *entity.UserProfile {
	t.Helper()
	p, err := e.users.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Password: "secret123",
		Avatar:   stage(t, "avatar.png"),
	})
	require.NoError(t, err)
	return p
}

func (e *env) publish(t *testing.T, ownerID, title string) *entity.Video {
	t.Helper()
	v, err := e.videos.Publish(context.Background(), ownerID, PublishInput{
		Title:       title,
		Description: title + " description",
		Duration:    12.5,
		VideoFile:   stage(t, "clip.mp4"),
		Thumbnail:   stage(t, "thumb.jpg"),
	})
	require.NoError(t, err)
	return v
}
