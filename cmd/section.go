package cmd

import (
	"fmt"
	"strings"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage the section outline",
	}

	cmd.AddCommand(
		newSectionAddCmd(app),
		newSectionEditCmd(app),
		newSectionListCmd(app),
		newSectionShowCmd(app),
	)

	return cmd
}

func newSectionAddCmd(app *app) *cobra.Command {
	var summary string
	var guidance string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a draft section to the outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			section := domain.Section{
				ID:       nextDraftID(app),
				Title:    strings.TrimSpace(args[0]),
				Summary:  summary,
				Guidance: guidance,
			}
			if err := store.Append(section); err != nil {
				return err
			}

			if err := saveSectionStore(cmd.Context(), app, projectID, store); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added section %q (%s)\n", section.Title, section.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&summary, "summary", "", "What the section should cover")
	cmd.Flags().StringVar(&guidance, "guidance", "", "Style or content guidance for generation")

	return cmd
}

func newSectionEditCmd(app *app) *cobra.Command {
	var rename string
	var summary string
	var guidance string

	cmd := &cobra.Command{
		Use:   "edit <title>",
		Short: "Change a section's title, summary, or guidance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			section, err := sectionByTitle(store, args[0])
			if err != nil {
				return err
			}

			patch := domain.SectionPatch{}
			if cmd.Flags().Changed("rename") {
				patch.Title = &rename
			}
			if cmd.Flags().Changed("summary") {
				patch.Summary = &summary
			}
			if cmd.Flags().Changed("guidance") {
				patch.Guidance = &guidance
			}

			if err := store.Patch(section.ID, patch); err != nil {
				return err
			}

			if err := saveSectionStore(cmd.Context(), app, projectID, store); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated section %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&rename, "rename", "", "New section title")
	cmd.Flags().StringVar(&summary, "summary", "", "What the section should cover")
	cmd.Flags().StringVar(&guidance, "guidance", "", "Style or content guidance for generation")

	return cmd
}

func newSectionListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List outline sections",
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

			for i, section := range store.Snapshot() {
				state := "draft"
				if section.Persisted {
					state = fmt.Sprintf("v%d", section.Version)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\t%s\t%s\n", i+1, section.Title, section.ID, state)
			}

			return nil
		},
	}
}

func newSectionShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Print a section's full content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			section, err := sectionByTitle(store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", section.Title, section.ID)
			if section.Summary != "" {
				_, _ = fmt.Fprintf(out, "Summary: %s\n", section.Summary)
			}
			if section.Guidance != "" {
				_, _ = fmt.Fprintf(out, "Guidance: %s\n", section.Guidance)
			}
			if section.Content == "" {
				_, _ = fmt.Fprintln(out, "\n[No content generated yet]")
			} else {
				_, _ = fmt.Fprintf(out, "\n%s\n", section.Content)
			}

			return nil
		},
	}
}

func nextDraftID(app *app) domain.SectionID {
	return domain.SectionID(fmt.Sprintf("draft-%d", app.now().UnixMilli()))
}
