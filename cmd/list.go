package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/lcexplorer/internal/dataset"
	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/spf13/cobra"
)

var listDataDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the CSV datasets of the data folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		dir := c.DataDir
		if listDataDir != "" {
			dir = listDataDir
		}
		opt, err := datasetOptions(c, "", "")
		if err != nil {
			return err
		}
		cands, err := source.Folder{Dir: dir}.Candidates()
		if err != nil {
			return err
		}
		if len(cands) == 0 {
			fmt.Printf("(no CSV files in %s)\n", dir)
			return nil
		}
		// Entries of one directory never share a name, so no duplicate guard.
		rows := make([][]string, 0, len(cands))
		for _, cand := range cands {
			rows = append(rows, listRow(cand, opt))
		}
		fmt.Println(renderTable([]string{"File", "Rows", "Dropped", "Status"}, rows, true))
		return nil
	},
}

func listRow(cand source.Candidate, opt dataset.Options) []string {
	rc, err := cand.Open()
	if err != nil {
		return []string{cand.Name, "-", "-", err.Error()}
	}
	defer rc.Close()
	d, err := dataset.Parse(cand.Name, rc, opt)
	if err != nil {
		return []string{cand.Name, "-", "-", err.Error()}
	}
	status := "ok"
	if _, err := d.Column(dataset.MagnitudeColumn); err != nil {
		status = "not plottable: " + err.Error()
	} else if _, err := d.Column(dataset.TimeColumn); err != nil {
		status = "not plottable: " + err.Error()
	}
	return []string{cand.Name, strconv.Itoa(d.Len()), strconv.Itoa(d.Dropped), status}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDataDir, "data-dir", "", "folder of .csv files (overrides config)")
}
