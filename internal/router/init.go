package router

import (
	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/container"
	"github.com/oksasatya/go-videotube/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/go-videotube/internal/interface/http"
	"github.com/oksasatya/go-videotube/internal/router/modules"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// Services is the application layer built once from the container singletons.
type Services struct {
	Users         *application.UserService
	Videos        *application.VideoService
	Comments      *application.CommentService
	Likes         *application.LikeService
	Subscriptions *application.SubscriptionService
	Playlists     *application.PlaylistService
}

func buildServices() (Services, *mongodb.UserRepository) {
	db := container.GetDB()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := mongodb.NewUserRepository(db)
	videos := mongodb.NewVideoRepository(db)
	comments := mongodb.NewCommentRepository(db)
	likes := mongodb.NewLikeRepository(db)
	subs := mongodb.NewSubscriptionRepository(db)
	playlists := mongodb.NewPlaylistRepository(db)
	views := mongodb.NewViewRepository(db)
	media := container.GetMediaStore()

	return Services{
		Users: application.NewUserService(users, views, helpers.NewBcryptHasher(cfg.BcryptCost),
			container.GetJWT(), media, container.GetNotifier(), logger),
		Videos:        application.NewVideoService(videos, comments, likes, users, views, media, container.GetVideoIndex(), logger),
		Comments:      application.NewCommentService(comments, videos, likes, views, logger),
		Likes:         application.NewLikeService(likes, videos, comments, views, logger),
		Subscriptions: application.NewSubscriptionService(subs, users, views, logger),
		Playlists:     application.NewPlaylistService(playlists, videos, views, logger),
	}, users
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc, users := buildServices()
	cfg := container.GetConfig()
	logger := container.GetLogger()
	uploads := handlers.Uploads{Dir: cfg.UploadTmpDir, MaxBytes: cfg.UploadMaxBytes}
	guard := modules.Guard(container.GetJWT(), users)

	r.Add(modules.NewDebugModule(cfg.DebugMetricsEnabled))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, container.GetCookies(), uploads, logger), guard))
	r.Add(modules.NewVideoModule(handlers.NewVideoHandler(svc.Videos, uploads, logger), guard))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(svc.Comments, logger), guard))
	r.Add(modules.NewLikeModule(handlers.NewLikeHandler(svc.Likes, logger), guard))
	r.Add(modules.NewSubscriptionModule(handlers.NewSubscriptionHandler(svc.Subscriptions, logger), guard))
	r.Add(modules.NewPlaylistModule(handlers.NewPlaylistHandler(svc.Playlists, logger), guard))
}
