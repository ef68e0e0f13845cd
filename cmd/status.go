package cmd

import (
	"encoding/json"
	"fmt"

	workspaceadapter "github.com/khyahahati/ai-doc-builder/internal/adapters/render/workspace"
	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the workspace outline and section states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			status := application.WorkspaceStatus{
				Project:  loadProjectBestEffort(cmd, app, projectID),
				Sections: store.Snapshot(),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}

			rendered, err := app.workspaceRenderer(status, workspaceadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render workspace: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

// loadProjectBestEffort fills in project metadata when the backend is
// reachable. Status stays usable offline, so a failed lookup degrades to
// the bare project ID instead of failing the command.
func loadProjectBestEffort(cmd *cobra.Command, app *app, projectID domain.ProjectID) domain.Project {
	if projectID == "" {
		return domain.Project{}
	}

	credential, err := loadCredential(cmd.Context(), app)
	if err != nil || credential == "" {
		return domain.Project{ID: projectID}
	}

	detail, err := app.projects.Get(cmd.Context(), projectID, credential)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: project lookup failed: %v\n", err)
		return domain.Project{ID: projectID}
	}

	return detail.Project
}
