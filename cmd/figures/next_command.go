package main

import (
	"fmt"
	"time"

	"github.com/kapu/figures-review-go/internal/app"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type nextOutput struct {
	Position      int               `json:"position"`
	Total         int               `json:"total"`
	View          review.DetailView `json:"view"`
	DetailError   string            `json:"detail_error,omitempty"`
	ActionMessage string            `json:"action_message,omitempty"`
}

func newNextCommand(ctx *commandContext) *cobra.Command {
	var post bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the saved review position, optionally posting it first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				return runNext(cmd, c, post, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&post, "post", false, "Mark the current personality as posted and move on")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func runNext(cmd *cobra.Command, c *app.Container, post, asJSON bool) error {
	runCtx := cmd.Context()
	name := c.Config.Session.Name

	s := review.NewState(review.FilterCreated, c.Review.Lists.ReviewPageSize())
	snap, ok, err := c.Sessions.Load(runCtx, name)
	if err != nil {
		c.Logger.Warn("Failed to load review session", zap.String("session", name), zap.Error(err))
	}
	if ok {
		s.Restore(review.Snapshot{SelectedCode: snap.ReviewCode})
	}

	if err := c.Review.RefreshReviewQueue(runCtx, s); err != nil {
		return loadFailure(c, s.ListError, err)
	}

	if post {
		changed, err := c.Review.Actions.MarkCurrentPosted(runCtx, s)
		if err != nil {
			return err
		}
		if changed {
			c.Review.RefreshDetail(runCtx, s)
		}
	}

	snap.ReviewCode = s.Snapshot().SelectedCode
	snap.SavedAt = time.Now()
	if err := c.Sessions.Save(runCtx, name, snap); err != nil {
		c.Logger.Warn("Failed to save review session", zap.String("session", name), zap.Error(err))
	}

	view, found := s.View()
	out := nextOutput{
		Position:      s.IndexOf(s.SelectedCode) + 1,
		Total:         len(s.Records),
		View:          view,
		DetailError:   s.DetailError,
		ActionMessage: s.ActionMessage,
	}
	if asJSON {
		return writeJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	if out.ActionMessage != "" {
		fmt.Fprintln(w, out.ActionMessage)
	}
	if !found {
		fmt.Fprintln(w, "No personalities found.")
		return nil
	}
	fmt.Fprintf(w, "%d of %d\n\n", out.Position, out.Total)
	fmt.Fprintln(w, c.Formatter.FormatFigureDetail(view, out.DetailError))
	return nil
}
