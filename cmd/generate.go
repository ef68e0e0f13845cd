package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *app) *cobra.Command {
	var noSpinner bool

	cmd := &cobra.Command{
		Use:   "generate <title>",
		Short: "Generate content for a section",
		Long:  "Generate content for the named outline section. With a stored credential the outline is pushed to the backend and content is generated there; without one a local placeholder draft is produced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := app.session.ActiveProject(cmd.Context())
			if err != nil {
				return fmt.Errorf("load active project: %w", err)
			}

			credential, err := loadCredential(cmd.Context(), app)
			if err != nil {
				return err
			}

			store, err := loadSectionStore(cmd.Context(), app, projectID)
			if err != nil {
				return err
			}

			section, err := sectionByTitle(store, args[0])
			if err != nil {
				return err
			}

			generate := func(ctx context.Context) error {
				return app.generator.Generate(ctx, projectID, store, section.ID, credential)
			}

			if noSpinner {
				err = generate(cmd.Context())
			} else {
				err = runTaskSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Generating %q...", section.Title), generate)
			}
			if err != nil {
				return err
			}

			if err := saveSectionStore(cmd.Context(), app, projectID, store); err != nil {
				return err
			}

			updated, err := sectionByTitle(store, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", updated.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Disable the progress spinner")

	return cmd
}
