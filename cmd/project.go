package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage document projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectUseCmd(app),
		newProjectShowCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *app) *cobra.Command {
	var title string
	var docType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credential, err := loadCredential(cmd.Context(), app)
			if err != nil {
				return err
			}

			project, err := app.projects.Create(cmd.Context(), application.CreateProjectCommand{
				Title:   title,
				DocType: domain.DocType(docType),
			}, credential)
			if err != nil {
				return err
			}

			if err := app.session.SetActiveProject(cmd.Context(), project.ID); err != nil {
				return fmt.Errorf("set active project: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s (%s)\n", project.ID, project.Title, project.DocType)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&docType, "type", string(domain.DocTypeDocx), "Document type (docx or pptx)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newProjectListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credential, err := loadCredential(cmd.Context(), app)
			if err != nil {
				return err
			}

			projects, err := app.projects.List(cmd.Context(), credential)
			if err != nil {
				return err
			}

			active, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			for _, project := range projects {
				marker := " "
				if project.ID == active {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", marker, project.ID, project.Title, project.DocType)
			}

			return nil
		},
	}
}

func newProjectUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <project-id>",
		Short: "Select the active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := domain.ProjectID(args[0])
			if err := app.session.SetActiveProject(cmd.Context(), projectID); err != nil {
				return fmt.Errorf("set active project: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active project: %s\n", projectID)
			return nil
		},
	}
}

func newProjectShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active project with its server-side section index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}
			if projectID == "" {
				return domain.ErrProjectNotSet
			}

			credential, err := loadCredential(cmd.Context(), app)
			if err != nil {
				return err
			}

			detail, err := app.projects.Get(cmd.Context(), projectID, credential)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(detail)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", detail.Project.ID, detail.Project.Title, detail.Project.DocType)
			for _, entry := range detail.Sections {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\tv%d\t%s\n", entry.ID, entry.Title, entry.Version, entry.Status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
