//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"bachaboard/internal/config"
	"bachaboard/internal/dbmysql"
	"bachaboard/internal/feed"
	"bachaboard/internal/feedback"
	"bachaboard/internal/user"
)

// This is just a declaration — wire generates the real body in wire_gen.go
func InitializeApplication(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	wire.Build(
		ProvideTokenManager,
		ProvideMongo,
		ProvideMediaGateway,
		ProvideMediaFileServer,
		dbmysql.NewMySQL,
		user.NewUserRepository,
		user.NewFollowRepository,
		user.NewUserService,
		user.NewHandler,
		feed.NewFeedRepository,
		ProvidePostStore,
		ProvideEngagement,
		feed.NewFeedService,
		ProvideFeedUsecase,
		feed.NewHandler,
		feedback.NewFeedbackRepository,
		feedback.NewFeedbackService,
		feedback.NewHandler,
		ProvideRouter,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
