package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kapu/figures-review-go/internal/app"
	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/format"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/util"
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filterFlag string
	var page int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prominent figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := review.ParseFilter(filterFlag)
			if err != nil {
				return err
			}
			if page < 1 {
				return errors.New("--page must be at least 1")
			}
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				result, err := c.Review.Lists.Load(cmd.Context(), filter, page)
				if err != nil {
					return loadFailure(c, review.MessageLoadFigures(err), err)
				}
				if asJSON {
					return writeJSON(cmd, result)
				}
				printFigureTable(cmd, c, result, "No prominent figures found.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filterFlag, "filter", string(review.FilterCreated), "Quote filter: created, pending or all")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newMonthlyCommand(ctx *commandContext) *cobra.Command {
	var page int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "List monthly figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return errors.New("--page must be at least 1")
			}
			return ctx.withContainer(cmd.Context(), cmd.ErrOrStderr(), func(c *app.Container) error {
				result, err := c.Review.Lists.LoadMonthlyFigures(cmd.Context(), page)
				if err != nil {
					return loadFailure(c, review.MessageLoadMonthly(err), err)
				}
				if asJSON {
					return writeJSON(cmd, result)
				}
				printFigureTable(cmd, c, result, "No monthly figures yet.")
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func printFigureTable(cmd *cobra.Command, c *app.Container, result review.ListResult, empty string) {
	out := cmd.OutOrStdout()
	if len(result.Records) == 0 {
		fmt.Fprintln(out, empty)
		return
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(result.Records))
	for i, r := range result.Records {
		position := (result.Page-1)*result.PageSize + i + 1
		code := r.Code
		if code == "" {
			code = constants.Markers.MissingCode
		}
		rows = append(rows, []string{
			strconv.Itoa(position),
			code,
			util.TruncateString(format.FallbackText(r.Name), constants.StringLimits.ListName),
			format.FallbackText(r.Country),
			util.TruncateString(format.FallbackText(r.ExcellenceField), constants.StringLimits.ListField),
			format.FormatDate(r.DOB),
			flag(r.QuoteCreated, colorize),
			flag(r.Posted, colorize),
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"#", "Code", "Name", "Country", "Field", "Born", "Quote", "Posted"},
		rows,
		[]columnAlignment{alignRight},
	))
	fmt.Fprintln(out, c.Formatter.FormatStats(result.Stats(), result.Page, result.TotalPages()))
}
