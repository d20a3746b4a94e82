package cmd

import (
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cinema-box-office/model"
	"cinema-box-office/service"
	"cinema-box-office/store"
)

var occupancyCmd = &cobra.Command{
	Use:   "occupancy",
	Short: "Show seat occupancy per showing",
	Long:  `Summarize free and sold seats for every showing in the seat state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog := service.NewCatalog(cfg.Movies)
		session := service.NewSeatSession(store.NewSeatStore(cfg.SeatsPath), cfg.Rows, cfg.Cols, catalog)
		if err := session.LoadOrInit(); err != nil {
			return err
		}
		renderOccupancy(catalog, session)
		return nil
	},
}

func renderOccupancy(catalog *service.Catalog, session *service.SeatSession) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Movie", "Time", "Free", "Sold", "Total"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 24},
	})
	t.Style().Options.SeparateRows = true

	claimed := map[string]bool{}
	for _, movie := range catalog.List() {
		for _, showtime := range movie.Times {
			key := model.ShowingKey(movie.ID, showtime)
			claimed[key] = true
			seats, err := session.Get(key)
			if err != nil {
				t.AppendRows([]table.Row{{movie.Title, showtime, "-", "-", "-"}}, rowConfigAutoMerge)
				continue
			}
			free := seats.Available()
			t.AppendRows([]table.Row{{
				movie.Title, showtime, free, len(seats) - free, len(seats),
			}}, rowConfigAutoMerge)
		}
		t.AppendSeparator()
	}

	// Showings persisted under keys the current catalog no longer names.
	var orphans []string
	for key := range session.State() {
		if !claimed[key] {
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)
	for _, key := range orphans {
		seats, _ := session.Get(key)
		free := seats.Available()
		t.AppendRows([]table.Row{{key, "", free, len(seats) - free, len(seats)}}, rowConfigAutoMerge)
	}

	t.Render()
}
