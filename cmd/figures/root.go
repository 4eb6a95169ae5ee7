package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var apiFlag string

	ctx := newCommandContext(&apiFlag)
	review := newReviewCommand(ctx)

	rootCmd := &cobra.Command{
		Use:           "figures",
		Short:         "Review prominent figures, their bios and quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          review.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "Backend base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(review)
	rootCmd.AddCommand(newNextCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newPostCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newMonthlyCommand(ctx))
	rootCmd.AddCommand(newVideosCommand(ctx))

	return rootCmd
}
