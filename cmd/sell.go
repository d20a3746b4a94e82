package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinema-box-office/config"
	"cinema-box-office/model"
	"cinema-box-office/service"
	"cinema-box-office/store"
)

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell tickets with plain line prompts",
	Long:  `Run the sale flow with line-oriented prompts instead of the full-screen interface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSellLoop(cfg)
	},
}

func runSellLoop(cfg config.Config) error {
	catalog := service.NewCatalog(cfg.Movies)
	pricing := service.NewPricing(cfg.TicketTypes)
	session := service.NewSeatSession(store.NewSeatStore(cfg.SeatsPath), cfg.Rows, cfg.Cols, catalog)
	if err := session.LoadOrInit(); err != nil {
		return err
	}
	ledger := store.NewLedger(cfg.TicketsPath)

	for {
		if err := runSale(catalog, pricing, session, ledger, cfg); err != nil {
			return err
		}
		again := promptui.Prompt{Label: "Sell another ticket", IsConfirm: true}
		if _, err := again.Run(); err != nil {
			fmt.Println("Good day!")
			return nil
		}
	}
}

func runSale(catalog *service.Catalog, pricing *service.Pricing, session *service.SeatSession, ledger *store.Ledger, cfg config.Config) error {
	sale := service.NewSale(catalog, pricing, session, ledger)

	namePrompt := promptui.Prompt{
		Label:    "Buyer name",
		Validate: service.ValidateBuyerName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		sale.Cancel()
		return nil
	}
	if err := sale.SetBuyer(name); err != nil {
		return err
	}

	movies := catalog.List()
	movieSelect := promptui.Select{
		Label: "Select movie",
		Items: movieLabels(movies),
		Size:  10,
	}
	idx, _, err := movieSelect.Run()
	if err != nil {
		sale.Cancel()
		return nil
	}
	if err := sale.SelectMovie(movies[idx].ID); err != nil {
		return err
	}

	timeSelect := promptui.Select{
		Label: "Select showtime",
		Items: sale.Movie().Times,
		Size:  10,
	}
	_, showtime, err := timeSelect.Run()
	if err != nil {
		sale.Cancel()
		return nil
	}
	if err := sale.SelectTime(showtime); err != nil {
		return err
	}

	seatMap, err := sale.SeatMap()
	if err != nil {
		return err
	}
	printSeatGrid(os.Stdout, seatMap, cfg.Rows, cfg.Cols)

	seatPrompt := promptui.Prompt{
		Label: "Seat (e.g. A1)",
		Validate: func(in string) error {
			return sale.CheckSeat(normalizeSeat(in))
		},
	}
	seatRaw, err := seatPrompt.Run()
	if err != nil {
		sale.Cancel()
		fmt.Println("Purchase cancelled.")
		return nil
	}
	if err := sale.SelectSeat(normalizeSeat(seatRaw)); err != nil {
		return err
	}

	typeSelect := promptui.Select{
		Label: "Select ticket type",
		Items: ticketTypeLabels(pricing),
		Size:  10,
	}
	typeIdx, _, err := typeSelect.Run()
	if err != nil {
		sale.Cancel()
		fmt.Println("Purchase cancelled.")
		return nil
	}
	if err := sale.SelectType(typeIdx + 1); err != nil {
		return err
	}

	printSummary(os.Stdout, sale)

	confirm := promptui.Prompt{Label: "Confirm purchase", IsConfirm: true}
	if _, err := confirm.Run(); err != nil {
		sale.Cancel()
		fmt.Println("Purchase cancelled.")
		return nil
	}

	ticket, err := sale.Confirm()
	if err != nil {
		return err
	}
	fmt.Printf("\nSold: %s, %s, seat %s to %s for %s\n\n",
		ticket.Movie, ticket.Time, ticket.Seat, ticket.Buyer, model.FormatPrice(ticket.Price))
	return nil
}

func movieLabels(movies []model.Movie) []string {
	labels := make([]string, 0, len(movies))
	for _, m := range movies {
		labels = append(labels, fmt.Sprintf("%d. %s  |  %s", m.ID, m.Title, strings.Join(m.Times, ", ")))
	}
	return labels
}

func ticketTypeLabels(pricing *service.Pricing) []string {
	types := pricing.Types()
	labels := make([]string, 0, len(types))
	for _, name := range types {
		price, _ := pricing.PriceOf(name)
		labels = append(labels, fmt.Sprintf("%s - %s", name, model.FormatPrice(price)))
	}
	return labels
}

func normalizeSeat(in string) string {
	return strings.ToUpper(strings.TrimSpace(in))
}

func printSeatGrid(w io.Writer, seats model.SeatMap, rows []string, cols int) {
	fmt.Fprintln(w, "\nSeat plan (O = free, X = sold)")
	header := "  "
	for c := 1; c <= cols; c++ {
		header += fmt.Sprintf(" %2d", c)
	}
	fmt.Fprintln(w, header)
	for _, r := range rows {
		line := r + " "
		for c := 1; c <= cols; c++ {
			if seats[model.SeatLabel(r, c)] {
				line += "  O"
			} else {
				line += "  X"
			}
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, sale *service.Sale) {
	fmt.Fprintln(w, "\n=== Sale summary ===")
	fmt.Fprintf(w, "Buyer   : %s\n", sale.Buyer())
	fmt.Fprintf(w, "Movie   : %s\n", sale.Movie().Title)
	fmt.Fprintf(w, "Time    : %s\n", sale.Showtime())
	fmt.Fprintf(w, "Seat    : %s\n", sale.Seat())
	fmt.Fprintf(w, "Type    : %s\n", sale.TicketType())
	fmt.Fprintf(w, "Price   : %s\n\n", model.FormatPrice(sale.Price()))
}
