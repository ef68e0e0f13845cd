package cmd

import (
	"fmt"

	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newLikeCmd(app *app) *cobra.Command {
	return newFeedbackCmd(app, domain.SentimentLike,
		"Approve a section and persist its content")
}

func newDislikeCmd(app *app) *cobra.Command {
	return newFeedbackCmd(app, domain.SentimentDislike,
		"Reject a section and request a revised draft")
}

func newFeedbackCmd(app *app, sentiment domain.Sentiment, short string) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <title>", sentiment),
		Short: short,
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

			err = app.feedback.Submit(cmd.Context(), projectID, store, section.ID, application.FeedbackCommand{
				Sentiment: sentiment,
				Message:   message,
			}, credential)
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

			if updated.Persisted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %q (v%d)\n", sentiment, updated.Title, updated.Version)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %q (draft)\n", sentiment, updated.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Feedback rationale sent to the generator")

	return cmd
}
