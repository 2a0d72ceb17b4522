package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sioXD/GitLab-TimeTool/internal/core/app"
	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
	"github.com/sioXD/GitLab-TimeTool/internal/log"
	"github.com/spf13/cobra"
)

func Export(appInstance *app.App) *cobra.Command {
	var days int
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the time tracking table as CSV",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExport(appInstance, days, output)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Only include time logged in the last N days (0 means all-time)")
	cmd.Flags().StringVar(&output, "output", "", "Write CSV to this file instead of stdout")

	return cmd
}

func runExport(appInstance *app.App, days int, output string) error {
	ctx := context.Background()

	var window *domain.DateWindow
	if days > 0 {
		window = &domain.DateWindow{
			Start: time.Now().UTC().AddDate(0, 0, -days),
		}
	}

	var dashboard *domain.Dashboard
	err := log.WithSpinner("Fetching time tracking data...", func() error {
		d, err := appInstance.Dashboard(ctx, window)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		dashboard = d

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}

	out := io.Writer(os.Stdout)
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := writeCSV(out, dashboard); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

// writeCSV renders the dashboard rows with one share column per user.
func writeCSV(out io.Writer, dashboard *domain.Dashboard) error {
	w := csv.NewWriter(out)

	header := []string{"Typ", "Titel", "IID", "Parent IID", "Zeitaufwand (h)", "gesch. Zeitaufwand (h)", "Kategorie"}
	header = append(header, dashboard.Users...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range dashboard.Rows {
		parentIID := ""
		if row.ParentIID != nil {
			parentIID = strconv.Itoa(*row.ParentIID)
		}

		record := []string{
			string(row.Kind),
			row.Title,
			strconv.Itoa(row.IID),
			parentIID,
			formatHours(row.SpentHours),
			formatHours(row.EstimateHours),
			row.Category,
		}
		for _, user := range dashboard.Users {
			share := ""
			if s, ok := row.UserShares[user]; ok {
				share = strconv.FormatFloat(s, 'f', 4, 64)
			}
			record = append(record, share)
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
