package cmd

import (
	"errors"
	"fmt"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the document backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := app.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if err := app.credentials.Put(cmd.Context(), credentialKey, token.AccessToken); err != nil {
				return fmt.Errorf("save credential: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Backend username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Backend password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.credentials.Delete(cmd.Context(), credentialKey)
			if err != nil && !errors.Is(err, domain.ErrCredentialNotFound) {
				return fmt.Errorf("discard credential: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
