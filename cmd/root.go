package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "docb",
		Short:         "AI document builder CLI: outline, generate, and export document sections",
		Long:          "docb drives an AI document generation backend from the terminal: create projects, sketch a section outline, generate section content, give feedback, and export the finished document.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newProjectCmd(app),
		newSectionCmd(app),
		newGenerateCmd(app),
		newLikeCmd(app),
		newDislikeCmd(app),
		newStatusCmd(app),
		newExportCmd(app),
	)

	return rootCmd
}
