package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kapu/figures-review-go/internal/app"
	"github.com/kapu/figures-review-go/internal/service/session"
	"github.com/kapu/figures-review-go/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Open the interactive review screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alternate screen owns the terminal, so logs only go to LOG_FILE
			return ctx.withContainer(cmd.Context(), nil, func(c *app.Container) error {
				return runReview(cmd, c, fresh)
			})
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the saved session and start from the top")
	return cmd
}

func runReview(cmd *cobra.Command, c *app.Container, fresh bool) error {
	runCtx := cmd.Context()
	name := c.Config.Session.Name

	var restored *session.Snapshot
	if fresh {
		if err := c.Sessions.Clear(runCtx, name); err != nil {
			c.Logger.Warn("Failed to clear review session", zap.String("session", name), zap.Error(err))
		}
	} else {
		snap, ok, err := c.Sessions.Load(runCtx, name)
		switch {
		case err != nil:
			c.Logger.Warn("Failed to load review session", zap.String("session", name), zap.Error(err))
		case ok:
			restored = &snap
			c.Logger.Info("Restoring review session",
				zap.String("session", name),
				zap.String("tab", snap.ActiveTab),
				zap.Time("saved_at", snap.SavedAt),
			)
		}
	}

	model := tui.NewModel(tui.NewService(c.Review, c.Client), tui.Options{
		Context:         runCtx,
		Logger:          c.Logger.Named("tui"),
		ReviewPageSize:  c.Review.Lists.ReviewPageSize(),
		ListPageSize:    c.Review.Lists.ListPageSize(),
		MonthlyPageSize: c.Review.Lists.MonthlyPageSize(),
		Snapshot:        restored,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("review screen: %w", err)
	}

	done, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	snap := done.Snapshot()
	snap.SavedAt = time.Now()
	if err := c.Sessions.Save(runCtx, name, snap); err != nil {
		c.Logger.Warn("Failed to save review session", zap.String("session", name), zap.Error(err))
	}
	return nil
}
