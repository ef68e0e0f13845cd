package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	exportadapter "github.com/khyahahati/ai-doc-builder/internal/adapters/export"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var remote bool
	var docType string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the document",
		Long:  "Export the workspace outline as a plain-text file, or download the rendered document (docx or pptx) from the backend with --remote.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			if remote {
				return runRemoteExport(cmd, app, projectID, domain.DocType(docType), outDir)
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			path, err := exportadapter.WriteFile(outDir, projectID, store.Snapshot())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Download the rendered document from the backend")
	cmd.Flags().StringVar(&docType, "type", string(domain.DocTypeDocx), "Remote document type (docx or pptx)")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")

	return cmd
}

func runRemoteExport(cmd *cobra.Command, app *app, projectID domain.ProjectID, docType domain.DocType, outDir string) error {
	if projectID == "" {
		return domain.ErrProjectNotSet
	}

	credential, err := loadCredential(cmd.Context(), app)
	if err != nil {
		return err
	}

	data, err := app.projects.ExportRemote(cmd.Context(), projectID, docType, credential)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, fmt.Sprintf("project-%s.%s", projectID, docType))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
