package main

import (
	"context"
	"log/slog"
	"os"

	"gigmarket/config"
	"gigmarket/internal/delivery"
	"gigmarket/internal/delivery/cli"
	"gigmarket/internal/domain/service"
	logs "gigmarket/internal/infra/log"
	"gigmarket/internal/infra/realtime"
	"gigmarket/internal/infra/rest"
	"gigmarket/internal/infra/store"
	"gigmarket/internal/usecase/impl"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startClientParams struct {
	fx.In
	fx.Lifecycle

	Shutdowner fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectGateway(),
		injectUsecase(),
		injectDelivery(),
		fx.Invoke(
			startClient,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		store.New,
	)
}

func injectGateway() fx.Option {
	return fx.Options(
		fx.Provide(
			rest.New,
			realtime.NewDialer,
			newAuthGateway,
			newChatGateway,
		),
	)
}

// newAuthGateway exposes the REST client through its auth-facing interface.
func newAuthGateway(client *rest.Client) service.AuthGateway {
	return client
}

// newChatGateway exposes the REST client through its chat-facing interface.
func newChatGateway(client *rest.Client) service.ChatGateway {
	return client
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewPresenceService,
			impl.NewChatService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				cli.NewRunner,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startClient(ctx context.Context, params startClientParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Client terminated", slog.Any("error", err))
				os.Exit(1)
			}
			if err := params.Shutdowner.Shutdown(); err != nil {
				slog.Error("Failed to shut down", slog.Any("error", err))
			}
		}()
	}
}
