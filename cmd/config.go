package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/lcexplorer/internal/config"
	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set lcexplorer configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("mode: %s\n", cfg.Mode)
		fmt.Printf("data_dir: %s\n", cfg.DataDir)
		fmt.Printf("addr: %s\n", cfg.Addr)
		fmt.Printf("delimiter: %q\n", cfg.Delimiter)
		fmt.Printf("decimal_separator: %q\n", cfg.DecimalSeparator)
		fmt.Printf("min_circle_size: %g\n", cfg.MinCircleSize)
		fmt.Printf("max_circle_size: %g\n", cfg.MaxCircleSize)
		fmt.Printf("default_circle_size: %g\n", cfg.DefaultCircleSize)
		fmt.Printf("max_upload_mb: %d\n", cfg.MaxUploadMB)
		fmt.Printf("title: %s\n", cfg.Title)
		if cfg.Subtitle != "" {
			fmt.Printf("subtitle: %s\n", cfg.Subtitle)
		}
		if cfg.Conclusion != "" {
			fmt.Printf("conclusion: %s\n", cfg.Conclusion)
		}
		fmt.Printf("chart_width: %d\n", cfg.ChartWidth)
		fmt.Printf("chart_height: %d\n", cfg.ChartHeight)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if _, err := currentConfig(); err != nil {
			return err
		}
		switch key {
		case "mode":
			m, err := source.ParseMode(val)
			if err != nil {
				return err
			}
			cfg.Mode = string(m)
		case "data_dir":
			cfg.DataDir = val
		case "addr":
			cfg.Addr = val
		case "delimiter":
			if cfgpkg.Rune(val) == 0 {
				return fmt.Errorf("invalid delimiter: %q (use a single character or tab)", val)
			}
			cfg.Delimiter = val
		case "decimal_separator":
			if r := cfgpkg.Rune(val); r != ',' && r != '.' {
				return fmt.Errorf("invalid decimal_separator: %q (use '.' or ',')", val)
			}
			cfg.DecimalSeparator = val
		case "min_circle_size", "max_circle_size", "default_circle_size":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid positive float for %s: %v", key, val)
			}
			switch key {
			case "min_circle_size":
				cfg.MinCircleSize = f
			case "max_circle_size":
				cfg.MaxCircleSize = f
			default:
				cfg.DefaultCircleSize = f
			}
		case "max_upload_mb", "chart_width", "chart_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "max_upload_mb":
				cfg.MaxUploadMB = i
			case "chart_width":
				cfg.ChartWidth = i
			default:
				cfg.ChartHeight = i
			}
		case "title":
			cfg.Title = val
		case "subtitle":
			cfg.Subtitle = val
		case "conclusion":
			cfg.Conclusion = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if cfg.MinCircleSize > cfg.MaxCircleSize {
			return fmt.Errorf("min_circle_size %g exceeds max_circle_size %g", cfg.MinCircleSize, cfg.MaxCircleSize)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
