package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wakaru-app/wakaru-api/internal/infra/postgres/sqlc"
	"github.com/wakaru-app/wakaru-api/internal/interface/httpapi"
	analysisllm "github.com/wakaru-app/wakaru-api/internal/module/analysis/adapter/llm"
	analysispg "github.com/wakaru-app/wakaru-api/internal/module/analysis/adapter/pg"
	analysisapp "github.com/wakaru-app/wakaru-api/internal/module/analysis/application"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	"github.com/wakaru-app/wakaru-api/internal/module/completion/adapter/openrouter"
	completiondomain "github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
	saveditempg "github.com/wakaru-app/wakaru-api/internal/module/saveditem/adapter/pg"
	saveditemapp "github.com/wakaru-app/wakaru-api/internal/module/saveditem/application"
	"github.com/wakaru-app/wakaru-api/internal/platform/config"
	"github.com/wakaru-app/wakaru-api/internal/platform/database"
)

// Container はアプリケーション全体の依存関係を保持する。
// 補完クライアントは構築時に一度だけ生成し、全リクエストで共有する。
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	AnalysisService  *analysisapp.AnalysisService
	SavedItemService *saveditemapp.SavedItemService
	Handler          *httpapi.Handler

	database *database.DB
}

type containerOptions struct {
	logger    *slog.Logger
	completer completiondomain.Completer
	analyzer  analysisdomain.Analyzer
	identity  httpapi.Identity
}

// Option はContainer構築時のオプション
type Option func(*containerOptions)

// WithLogger はロガーを差し替える
func WithLogger(logger *slog.Logger) Option {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithCompleter は補完クライアントを差し替える
func WithCompleter(completer completiondomain.Completer) Option {
	return func(opts *containerOptions) {
		opts.completer = completer
	}
}

// WithAnalyzer はAnalyzerを差し替える
func WithAnalyzer(analyzer analysisdomain.Analyzer) Option {
	return func(opts *containerOptions) {
		opts.analyzer = analyzer
	}
}

// WithIdentity は認証アダプターを差し替える
func WithIdentity(identity httpapi.Identity) Option {
	return func(opts *containerOptions) {
		opts.identity = identity
	}
}

// New は設定からコンテナを生成する
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベース初期化に失敗しました: %w", err)
	}

	return NewWithDB(cfg, db, opts...)
}

// NewWithDB は既存のDBを受け取りコンテナを生成する
func NewWithDB(cfg *config.Config, db *database.DB, opts ...Option) (*Container, error) {
	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	queries := sqlc.New(db.Pool)
	analysisRepo := analysispg.NewAnalysisRepository(queries)
	savedItemRepo := saveditempg.NewSavedItemRepository(queries)

	// 補完クライアント（OpenRouter）
	completer := options.completer
	if completer == nil {
		client, err := openrouter.NewClient(openrouter.Config{
			APIKey:  cfg.OpenRouter.APIKey,
			SiteURL: cfg.OpenRouter.SiteURL,
			AppName: cfg.OpenRouter.AppName,
		})
		if err != nil {
			return nil, fmt.Errorf("OpenRouterクライアント初期化に失敗しました: %w", err)
		}
		completer = client
	}

	// Analyzer
	analyzer := options.analyzer
	if analyzer == nil {
		llmAnalyzer, err := analysisllm.NewAnalyzer(completer, cfg.OpenRouter.Model, options.logger)
		if err != nil {
			return nil, fmt.Errorf("Analyzer初期化に失敗しました: %w", err)
		}
		analyzer = llmAnalyzer
	}

	analysisService := analysisapp.NewAnalysisService(analysisRepo, analyzer, options.logger)
	savedItemService := saveditemapp.NewSavedItemService(savedItemRepo, analysisRepo, options.logger)

	identity := options.identity
	if identity == nil {
		identity = httpapi.NewHeaderIdentity()
	}

	handler := httpapi.NewHandler(analysisService, savedItemService, identity, options.logger)

	return &Container{
		Config:           cfg,
		Logger:           options.logger,
		AnalysisService:  analysisService,
		SavedItemService: savedItemService,
		Handler:          handler,
		database:         db,
	}, nil
}

// Close は内部リソースを解放する
func (c *Container) Close() {
	if c != nil && c.database != nil {
		c.database.Close()
	}
}

// Database はデータベースを返す
func (c *Container) Database() *database.DB {
	if c == nil {
		return nil
	}
	return c.database
}
