package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
	"github.com/KaramelBytes/lcexplorer/internal/explorer"
	"github.com/KaramelBytes/lcexplorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	descRows      int
	descOutput    string
	descDelimiter string
	descDecimal   string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Show the cleaned rows and summary statistics of a light-curve CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		opt, err := datasetOptions(c, descDelimiter, descDecimal)
		if err != nil {
			return err
		}
		d, err := dataset.LoadFile(args[0], opt)
		if err != nil {
			return err
		}
		in := explorer.Inspect(d)
		logger.Debug("describe %s: rows=%d dropped=%d numeric=%d", d.Name, d.Len(), d.Dropped, len(in.Stats.Cols))

		if descOutput != "" {
			if err := utils.SafeWriteFile(descOutput, []byte(in.Stats.Markdown())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", descOutput)
			return nil
		}
		fmt.Println(describeText(in, descRows))
		return nil
	},
}

// describeText renders the first n cleaned rows (all when n < 0) followed by
// the statistics table.
func describeText(in *explorer.Inspection, n int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Data for %s:", in.Name)))
	b.WriteString("\n")
	rows := in.Rows
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	if n != 0 {
		b.WriteString(renderTable(in.Header, rows, false))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%d rows", len(in.Rows)))
	if in.Dropped > 0 {
		b.WriteString(fmt.Sprintf(", %d dropped with missing values", in.Dropped))
	}
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Summary statistics for %s:", in.Name)))
	b.WriteString("\n")
	if len(in.Stats.Cols) == 0 {
		b.WriteString("(no numeric columns)")
		return b.String()
	}
	header, stats := in.Stats.Table()
	b.WriteString(renderTable(header, stats, true))
	return b.String()
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().IntVar(&descRows, "rows", 10, "number of cleaned rows to print (-1 = all)")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the summary (Markdown)")
	describeCmd.Flags().StringVar(&descDelimiter, "delimiter", "", "CSV delimiter: ';' | ',' | 'tab' (overrides config)")
	describeCmd.Flags().StringVar(&descDecimal, "decimal", "", "decimal separator: '.'|'comma' (overrides config)")
}
