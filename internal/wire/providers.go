package wire

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bachaboard/internal/common"
	"bachaboard/internal/config"
	"bachaboard/internal/dbmongo"
	"bachaboard/internal/feed"
	"bachaboard/internal/feedback"
	"bachaboard/internal/media"
	"bachaboard/internal/routes"
	"bachaboard/internal/user"
)

// Application is the fully assembled server
type Application struct {
	Config *config.Config
	Logger *zap.Logger
	Router *mux.Router
	Mongo  *dbmongo.MongoClient // nil when media storage is disabled
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays)
}

// ProvideMongo connects to MongoDB only when media storage is enabled;
// otherwise the media gateway runs in placeholder mode.
func ProvideMongo(cfg *config.Config, logger *zap.Logger) (*dbmongo.MongoClient, error) {
	if !cfg.MongoDB.Enabled {
		logger.Info("mongo disabled, media gateway will return placeholder URLs")
		return nil, nil
	}
	return dbmongo.NewMongoConnection(cfg)
}

func ProvideMediaGateway(cfg *config.Config, mongoClient *dbmongo.MongoClient, logger *zap.Logger) media.Gateway {
	return media.NewGateway(cfg, mongoClient, logger)
}

func ProvideMediaFileServer(cfg *config.Config, mongoClient *dbmongo.MongoClient, logger *zap.Logger) *media.FileServer {
	if !cfg.MongoDB.Enabled || mongoClient == nil {
		return nil
	}
	return media.NewFileServer(mongoClient, logger)
}

func ProvidePostStore(r *feed.FeedRepository) feed.PostStore {
	return r
}

func ProvideEngagement(r *feed.FeedRepository) feed.Engagement {
	return r
}

func ProvideFeedUsecase(s *feed.FeedService) feed.FeedUsecase {
	return s
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	tm *common.TokenManager,
	userHandler *user.Handler,
	feedHandler *feed.Handler,
	feedbackHandler *feedback.Handler,
	fileServer *media.FileServer,
) *mux.Router {
	return routes.InitializeRoutes(routes.Handlers{
		User:       userHandler,
		Feed:       feedHandler,
		Feedback:   feedbackHandler,
		MediaFiles: fileServer,
	}, tm, logger)
}
