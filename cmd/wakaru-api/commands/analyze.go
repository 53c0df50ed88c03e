package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// AnalyzeAction はテキストを一度だけ解析し、結果のJSONを標準出力へ書き出す
func AnalyzeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	result, err := appCtx.Container.AnalysisService.Submit(ctx, cmd.String("text"))
	if err != nil {
		return fmt.Errorf("解析に失敗: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string]any{
		"analysis":     result.Analysis,
		"deduplicated": result.Deduplicated,
	}); err != nil {
		return fmt.Errorf("結果の出力に失敗: %w", err)
	}

	return nil
}
