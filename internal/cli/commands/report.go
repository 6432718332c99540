package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gamevault/backoffice/internal/application/usecase/financials"
	"github.com/gamevault/backoffice/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

type ReportCmd struct {
	provider    Provider
	startDate   string
	endDate     string
	granularity string
	platform    string
	opex        string
	top         int
	asOf        string
}

func NewReportCmd(provider Provider) *cobra.Command {
	rc := &ReportCmd{provider: provider}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the financial report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.startDate, "start", "", "First day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.endDate, "end", "", "Last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.granularity, "granularity", string(financials.GranularityMonth), "day, week, month, bi-annual, annual or all")
	cmd.Flags().StringVar(&rc.platform, "platform", "", "Only count records touching this platform")
	cmd.Flags().StringVar(&rc.opex, "operating-expenses", "0", "Operating expenses deducted from gross profit")
	cmd.Flags().IntVar(&rc.top, "top", 0, "Number of top games, 0 for the configured default")
	cmd.Flags().StringVar(&rc.asOf, "as-of", "", "Projection reference time (RFC 3339 or YYYY-MM-DD), defaults to now")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	inj, err := rc.provider(ctx)
	if err != nil {
		return err
	}
	loc := inj.Config.Report.Location()

	input := financials.GetFinancialsInput{
		Granularity: financials.Granularity(rc.granularity),
		Platform:    rc.platform,
		TopGames:    rc.top,
	}

	if input.StartDate, err = parseDateFlag("start", rc.startDate, loc); err != nil {
		return err
	}
	if input.EndDate, err = parseDateFlag("end", rc.endDate, loc); err != nil {
		return err
	}
	if rc.asOf != "" {
		if parsed, perr := time.Parse(time.RFC3339, rc.asOf); perr == nil {
			input.AsOf = &parsed
		} else {
			day, derr := parseDateFlag("as-of", rc.asOf, loc)
			if derr != nil {
				return derr
			}
			// A plain date covers that whole day.
			endOfDay := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
			input.AsOf = &endOfDay
		}
	}

	input.OperatingExpenses, err = decimal.NewFromString(rc.opex)
	if err != nil {
		return fmt.Errorf("invalid --operating-expenses %q: %w", rc.opex, err)
	}

	report, err := inj.GetFinancials.Execute(ctx, input)
	if err != nil {
		return err
	}

	return writeJSON(cmd, dto.ToFinancialsResponse(report))
}

func parseDateFlag(name, raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, raw)
	}
	return &parsed, nil
}
