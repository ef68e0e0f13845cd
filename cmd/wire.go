package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	apiadapter "github.com/khyahahati/ai-doc-builder/internal/adapters/api"
	chainstore "github.com/khyahahati/ai-doc-builder/internal/adapters/credentials/chain"
	workspaceadapter "github.com/khyahahati/ai-doc-builder/internal/adapters/render/workspace"
	tomlrepo "github.com/khyahahati/ai-doc-builder/internal/adapters/repo/toml"
	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
	"github.com/spf13/viper"
)

const (
	credentialKey     = "token"
	apiBaseURLKey     = "api.base_url"
	defaultAPIBaseURL = "http://127.0.0.1:8000"
)

type app struct {
	client            *apiadapter.Client
	projects          *application.ProjectService
	generator         *application.GenerateService
	feedback          *application.FeedbackService
	workspace         ports.WorkspaceRepository
	session           ports.SessionRepository
	credentials       ports.CredentialStore
	workspaceRenderer func(application.WorkspaceStatus, workspaceadapter.RenderOptions) (string, error)
	now               func() time.Time
}

func wireApp() (*app, error) {
	// One viper instance backs both the workspace repository and the client
	// config: NewRepository reads ~/.docbuilder/config.toml into it.
	cfg := viper.New()
	cfg.SetDefault(apiBaseURLKey, defaultAPIBaseURL)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire workspace repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	credentials, err := chainstore.NewEnvFirstWithFileFallback("DOCB", filepath.Join(homeDir, ".docbuilder", "credentials"))
	if err != nil {
		return nil, fmt.Errorf("wire credential store chain: %w", err)
	}

	client := &apiadapter.Client{
		BaseURL: envOrDefault("DOCB_BASE_URL", cfg.GetString(apiBaseURLKey)),
	}
	reconciler := application.NewReconciler(client)
	clock := ports.SystemClock{}

	return &app{
		client:            client,
		projects:          application.NewProjectService(client),
		generator:         application.NewGenerateService(client, reconciler, clock),
		feedback:          application.NewFeedbackService(client, reconciler, clock),
		workspace:         repo,
		session:           repo,
		credentials:       credentials,
		workspaceRenderer: workspaceadapter.Render,
		now:               time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
