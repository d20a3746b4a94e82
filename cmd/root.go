package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cinema-box-office/config"
	"cinema-box-office/tui"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	configPath  string
	seatsPath   string
	ticketsPath string
)

var rootCmd = &cobra.Command{
	Use:   "box-office",
	Short: "Cinema box-office terminal",
	Long:  `Sell cinema tickets, check seat occupancy and review the sales ledger, all from one terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(tui.New(cfg), tea.WithAltScreen()).Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("box-office %s", version)
		if commit != "none" && commit != "" {
			fmt.Printf(" (%s)", commit)
		}
		fmt.Println()
	},
}

func Execute() {
	rootCmd.AddCommand(sellCmd, ledgerCmd, occupancyCmd, versionCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&seatsPath, "seats", "", "override the seat-state file path")
	rootCmd.PersistentFlags().StringVar(&ticketsPath, "tickets", "", "override the ticket ledger file path")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if seatsPath != "" {
		cfg.SeatsPath = seatsPath
	}
	if ticketsPath != "" {
		cfg.TicketsPath = ticketsPath
	}
	return cfg, nil
}
