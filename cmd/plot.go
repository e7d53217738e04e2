package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/lcexplorer/internal/chart"
	"github.com/KaramelBytes/lcexplorer/internal/explorer"
	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/KaramelBytes/lcexplorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	plotOutput    string
	plotSize      float64
	plotReverse   bool
	plotDelimiter string
	plotDecimal   string
)

var plotCmd = &cobra.Command{
	Use:   "plot <files...>",
	Short: "Export the magnitude/time scatter of one or more CSV files",
	Long:  `Export the combined scatter plot as a PNG image or as a Vega-Lite JSON specification, chosen by the extension of --output.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ext := strings.ToLower(filepath.Ext(plotOutput))
		if ext != ".png" && ext != ".json" {
			return fmt.Errorf("--output must end in .png or .json, got %q", plotOutput)
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		ds, err := datasetOptions(c, plotDelimiter, plotDecimal)
		if err != nil {
			return err
		}
		eopt := explorerOptions(c, ds)

		src := source.Paths{Files: args}
		cands, err := src.Candidates()
		if err != nil {
			return err
		}
		names := source.Names(cands)
		sess, warnings, err := explorer.Load(cands, names, ds)
		for _, w := range warnings {
			fmt.Printf("⚠ %s\n", w)
		}
		if err != nil {
			return err
		}
		size := plotSize
		if !cmd.Flags().Changed("size") {
			size = eopt.DefaultCircleSize
		}
		ch, err := chart.Compose(names, sess, chart.Options{
			CircleSize:  explorer.ClampSize(size, eopt),
			FixedDomain: plotReverse,
		})
		if err != nil {
			return err
		}

		var out []byte
		switch ext {
		case ".png":
			var buf bytes.Buffer
			if err := chart.RenderPNG(&buf, ch, c.ChartWidth, c.ChartHeight); err != nil {
				return fmt.Errorf("render png: %w", err)
			}
			out = buf.Bytes()
		case ".json":
			spec, err := chart.VegaLite(ch, c.ChartHeight)
			if err != nil {
				return err
			}
			if out, err = utils.PrettyJSON(spec); err != nil {
				return err
			}
		}
		if err := utils.SafeWriteFile(plotOutput, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✓ Wrote %d series to %s\n", len(ch.Series), plotOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "output path: chart.png or chart.json")
	plotCmd.Flags().Float64Var(&plotSize, "size", 1, "marker circle size (clamped to the configured range)")
	plotCmd.Flags().BoolVar(&plotReverse, "reverse", false, "fix the magnitude axis to the data range and reverse it")
	plotCmd.Flags().StringVar(&plotDelimiter, "delimiter", "", "CSV delimiter: ';' | ',' | 'tab' (overrides config)")
	plotCmd.Flags().StringVar(&plotDecimal, "decimal", "", "decimal separator: '.'|'comma' (overrides config)")
	_ = plotCmd.MarkFlagRequired("output")
}
