package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kapu/figures-review-go/internal/app"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/spf13/cobra"
)

type showOutput struct {
	Figure      *domain.FigureSummary `json:"figure"`
	Details     review.Details        `json:"details"`
	View        review.DetailView     `json:"view"`
	DetailError string                `json:"detail_error,omitempty"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show a raw post with its bio and quotes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.TrimSpace(args[0])
			if code == "" {
				return errors.New("code is required")
			}
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				figure, err := c.Client.GetRawPost(cmd.Context(), code)
				if err != nil {
					return loadFailure(c, review.MessageLoadRawPost(err), err)
				}

				details, err := c.Review.Details.LoadDetails(cmd.Context(), code)
				out := showOutput{Figure: figure, Details: details}
				if err != nil {
					out.DetailError = err.Error()
				}
				out.View = review.BuildDetailView(figure, details.Bio, details.Quotes)

				if asJSON {
					return writeJSON(cmd, out)
				}
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, c.Formatter.FormatRawPost(*figure))
				fmt.Fprintln(w)
				fmt.Fprintln(w, c.Formatter.FormatFigureDetail(out.View, out.DetailError))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newPostCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Mark a monthly figure as posted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				if err := c.Review.Actions.MarkPosted(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as posted.\n", strings.TrimSpace(args[0]))
				return nil
			})
		},
	}
}

func newQueueCommand(ctx *commandContext) *cobra.Command {
	var month string
	var field string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue a monthly figures generation job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				outcome, err := c.Review.Actions.QueueMonthlyFigures(cmd.Context(), month, field)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, outcome)
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.Formatter.FormatJobQueued(*outcome))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to generate figures for, e.g. March")
	cmd.Flags().StringVar(&field, "field", "", "Field of excellence, e.g. Science")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List generated videos grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				groups, err := c.Review.Actions.LoadVideos(cmd.Context())
				if err != nil {
					return loadFailure(c, review.MessageLoadVideos(err), err)
				}
				if asJSON {
					return writeJSON(cmd, groups)
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.Formatter.FormatVideoGroups(groups))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}
