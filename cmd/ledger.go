package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cinema-box-office/model"
	"cinema-box-office/store"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show all sold tickets",
	Long:  `List every ticket recorded in the sales ledger, in sale order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tickets, err := store.NewLedger(cfg.TicketsPath).List()
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			fmt.Println("No tickets sold yet.")
			return nil
		}
		renderLedger(tickets)
		return nil
	},
}

func renderLedger(tickets []model.Ticket) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Timestamp", "Movie", "Time", "Seat", "Type", "Price", "Buyer"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true, WidthMax: 24},
		{Number: 3, AutoMerge: true},
	})
	t.Style().Options.SeparateRows = true

	for _, ticket := range tickets {
		t.AppendRows([]table.Row{{
			ticket.Timestamp,
			ticket.Movie,
			ticket.Time,
			ticket.Seat,
			ticket.Type,
			model.FormatPrice(ticket.Price),
			ticket.Buyer,
		}}, rowConfigAutoMerge)
	}
	t.Render()
}
