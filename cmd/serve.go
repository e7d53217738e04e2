package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/lcexplorer/internal/source"
	"github.com/KaramelBytes/lcexplorer/internal/web"
	"github.com/spf13/cobra"
)

var (
	srvMode    string
	srvDataDir string
	srvAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the light-curve dashboard",
	Long: `Run the dashboard in one of two variants:

  upload  datasets come from files uploaded in the browser
  folder  datasets are the .csv files of --data-dir; the magnitude axis is
          fixed to the data range and reversed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		mode := c.Mode
		if srvMode != "" {
			mode = srvMode
		}
		m, err := source.ParseMode(mode)
		if err != nil {
			return err
		}
		dataDir := c.DataDir
		if srvDataDir != "" {
			dataDir = srvDataDir
		}
		addr := c.Addr
		if srvAddr != "" {
			addr = srvAddr
		}
		if m == source.ModeFolder {
			if st, err := os.Stat(dataDir); err != nil || !st.IsDir() {
				logger.Warn("data dir %s is not readable yet; pages will report it until it exists", dataDir)
			}
		}
		ds, err := datasetOptions(c, "", "")
		if err != nil {
			return err
		}
		srv, err := web.NewServer(web.Options{
			Mode:           m,
			DataDir:        dataDir,
			Explorer:       explorerOptions(c, ds),
			Title:          c.Title,
			Subtitle:       c.Subtitle,
			Conclusion:     c.Conclusion,
			ChartWidth:     c.ChartWidth,
			ChartHeight:    c.ChartHeight,
			MaxUploadBytes: int64(c.MaxUploadMB) << 20,
		}, logger)
		if err != nil {
			return fmt.Errorf("init server: %w", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Printf("✓ Serving %s dashboard on http://%s\n", m, addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvMode, "mode", "", "dashboard variant: upload | folder (overrides config)")
	serveCmd.Flags().StringVar(&srvDataDir, "data-dir", "", "folder of .csv files for folder mode (overrides config)")
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (overrides config)")
}
