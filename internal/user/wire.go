//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pededrink/internal/user/delivery/http"
	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/internal/user/usecase/command"
	"github.com/tair/pededrink/internal/user/usecase/query"
	"github.com/tair/pededrink/pkg/middleware"
)

// Wire sets
var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewRefreshTokenHandler,
	command.NewUpdateUserHandler,
	command.NewDeleteUserHandler,
	wire.Struct(new(http.Commands), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewGetStatsHandler,
	wire.Struct(new(http.Queries), "*"),
)

var AllHandlersSet = wire.NewSet(
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(repo domain.UserRepository, metrics *middleware.HTTPMetrics, reg prometheus.Registerer) *http.UserHandler {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandler,
	)
	return nil
}
