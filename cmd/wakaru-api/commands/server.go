package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/wakaru-app/wakaru-api/internal/interface/httpapi"
)

// ServerStartAction はHTTPサーバを起動する
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	port := cmd.Int("port")
	if port <= 0 {
		port = appCtx.Config.Server.Port
	}

	server := httpapi.NewServer(port, appCtx.Container.Handler, appCtx.Logger())
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("HTTPサーバの実行に失敗: %w", err)
	}

	return nil
}
