package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-videotube/config"
	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/infrastructure/queue"
	"github.com/oksasatya/go-videotube/internal/infrastructure/search"
	mediastore "github.com/oksasatya/go-videotube/internal/infrastructure/storage"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)     { cfg = c }
func GetConfig() *config.Config      { return cfg }
func SetLogger(l *logrus.Logger)     { logger = l }
func GetLogger() *logrus.Logger      { return logger }
func SetMongo(c *mongo.Client)       { mongoClient = c }
func GetMongo() *mongo.Client        { return mongoClient }
func SetRedis(r *redis.Client)       { redisClient = r }
func GetRedis() *redis.Client        { return redisClient }
func SetGCS(s *storage.Client)       { gcsClient = s }
func GetGCS() *storage.Client        { return gcsClient }
func SetJWT(m *helpers.JWTManager)   { jwtManager = m }
func SetES(c *elasticsearch.Client)  { esClient = c }
func GetES() *elasticsearch.Client   { return esClient }
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil {
		jwtManager = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	}
	return jwtManager
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

// GetDB returns the application database on the shared client.
func GetDB() *mongo.Database { return mongoClient.Database(cfg.MongoDB) }

func GetMediaStore() application.MediaStore {
	return mediastore.NewGCSMediaStore(gcsClient, cfg.GCSBucket)
}

// GetVideoIndex returns nil when Elasticsearch is not configured; search then answers 502.
func GetVideoIndex() application.VideoIndexer {
	if esClient == nil {
		return nil
	}
	return search.NewVideoIndex(esClient, cfg.ESVideosIndex, logger)
}

func GetNotifier() application.Notifier {
	if rabbitPub == nil {
		return queue.NewEmailNotifier(nil, cfg)
	}
	return queue.NewEmailNotifier(rabbitPub, cfg)
}

func GetCookies() *helpers.CookieManager {
	return helpers.NewCookieManager(helpers.CookieConfig{
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSite(),
	})
}
