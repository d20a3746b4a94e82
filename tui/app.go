package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinema-box-office/config"
	"cinema-box-office/model"
	"cinema-box-office/service"
	"cinema-box-office/store"
)

type appState int

const (
	stateLoading appState = iota
	stateEnterName
	stateSelectMovie
	stateSelectTime
	stateSelectSeat
	stateSelectType
	stateConfirm
	stateCommitting
	stateReceipt
	stateCancelled
	stateError
)

type appModel struct {
	cfg     config.Config
	catalog *service.Catalog
	pricing *service.Pricing
	session *service.SeatSession
	ledger  *store.Ledger

	sale *service.Sale

	state     appState
	lastState appState
	err       error
	notice    string

	width  int
	height int

	nameInput textinput.Model
	seatInput textinput.Model

	movieList list.Model
	timeList  list.Model
	typeList  list.Model

	spinner spinner.Model

	ticket model.Ticket
}

type seatStateMsg struct {
	err error
}

type commitMsg struct {
	ticket model.Ticket
	err    error
}

type errMsg struct {
	err error
}

func New(cfg config.Config) tea.Model {
	catalog := service.NewCatalog(cfg.Movies)
	pricing := service.NewPricing(cfg.TicketTypes)
	session := service.NewSeatSession(store.NewSeatStore(cfg.SeatsPath), cfg.Rows, cfg.Cols, catalog)
	ledger := store.NewLedger(cfg.TicketsPath)

	m := appModel{
		cfg:     cfg,
		catalog: catalog,
		pricing: pricing,
		session: session,
		ledger:  ledger,
		state:   stateLoading,
	}

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Ada Lovelace"
	m.nameInput.CharLimit = 64
	m.nameInput.Width = 32

	m.seatInput = textinput.New()
	m.seatInput.Placeholder = "A1"
	m.seatInput.CharLimit = 4
	m.seatInput.Width = 8

	m.movieList = newList("Select Movie")
	m.movieList.SetItems(buildMovieItems(catalog.List()))
	m.timeList = newList("Select Showtime")
	m.typeList = newList("Select Ticket Type")
	m.typeList.SetItems(buildTypeItems(pricing))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadSeatsCmd(), m.spinner.Tick, textinput.Blink)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateLoading || m.state == stateCommitting {
			return m, cmd
		}
		return m, nil

	case seatStateMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.startSale()
		return m, textinput.Blink

	case commitMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.ticket = msg.ticket
		m.state = stateReceipt
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state)
		m.state = stateError
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateEnterName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectTime:
		m.timeList, cmd = m.timeList.Update(msg)
	case stateSelectSeat:
		m.seatInput, cmd = m.seatInput.Update(msg)
	case stateSelectType:
		m.typeList, cmd = m.typeList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoading:
		return header + "\n\n" + fmt.Sprintf("%s Loading seat state\n\n%s", m.spinner.View(), hint("Reading persisted occupancy..."))
	case stateEnterName:
		return header + "\n\n" + m.nameView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectTime:
		return header + "\n\n" + m.timeList.View()
	case stateSelectSeat:
		return header + "\n\n" + m.seatView()
	case stateSelectType:
		return header + "\n\n" + m.typeList.View() + m.noticeView()
	case stateConfirm:
		return header + "\n\n" + m.summaryView()
	case stateCommitting:
		return header + "\n\n" + fmt.Sprintf("%s Committing sale", m.spinner.View())
	case stateReceipt:
		return header + "\n\n" + m.receiptView()
	case stateCancelled:
		return header + "\n\n" + "Purchase cancelled. No ticket was issued.\n\n" + hint("n new sale • q quit")
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Box Office")
	sub := []string{}
	if m.sale != nil && m.sale.Buyer() != "" {
		sub = append(sub, fmt.Sprintf("Buyer: %s", m.sale.Buyer()))
	}
	if m.sale != nil && m.sale.Movie().Title != "" {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.sale.Movie().Title))
	}
	if m.sale != nil && m.sale.Showtime() != "" {
		sub = append(sub, fmt.Sprintf("Time: %s", m.sale.Showtime()))
	}
	if m.sale != nil && m.sale.Seat() != "" {
		sub = append(sub, fmt.Sprintf("Seat: %s", m.sale.Seat()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc cancel sale"
	if m.state == stateConfirm {
		hints = "y confirm • n cancel • ctrl+c quit"
	}
	if m.state == stateReceipt || m.state == stateCancelled {
		hints = "n new sale • q quit"
	}
	return title + meta + "\n" + hint(hints)
}

func (m appModel) nameView() string {
	return "Buyer name:\n\n" + m.nameInput.View() + m.noticeView() + "\n\n" + hint("Letters and spaces only • enter to continue")
}

func (m appModel) seatView() string {
	return m.renderSeatGrid() + "\nSeat code:\n\n" + m.seatInput.View() + m.noticeView() + "\n\n" + hint("Type a seat like A1 • enter to continue")
}

func (m appModel) noticeView() string {
	if m.notice == "" {
		return ""
	}
	return "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.notice)
}

func (m appModel) summaryView() string {
	label := lipgloss.NewStyle().Faint(true)
	lines := []string{
		"Sale summary",
		"",
		fmt.Sprintf("%s %s", label.Render("Buyer :"), m.sale.Buyer()),
		fmt.Sprintf("%s %s", label.Render("Movie :"), m.sale.Movie().Title),
		fmt.Sprintf("%s %s", label.Render("Time  :"), m.sale.Showtime()),
		fmt.Sprintf("%s %s", label.Render("Seat  :"), m.sale.Seat()),
		fmt.Sprintf("%s %s", label.Render("Type  :"), m.sale.TicketType()),
		fmt.Sprintf("%s %s", label.Render("Price :"), model.FormatPrice(m.sale.Price())),
		"",
		hint("Press y to confirm the purchase, n to cancel."),
	}
	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
	return panel
}

func (m appModel) receiptView() string {
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	lines := []string{
		ok.Render("Purchase complete"),
		"",
		fmt.Sprintf("%s • %s • seat %s", m.ticket.Movie, m.ticket.Time, m.ticket.Seat),
		fmt.Sprintf("%s ticket for %s — %s", m.ticket.Type, m.ticket.Buyer, model.FormatPrice(m.ticket.Price)),
		hint(m.ticket.Timestamp),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		switch m.state {
		case stateError:
			m.err = nil
			m.state = m.lastState
			return m, nil, true
		case stateLoading, stateCommitting, stateReceipt, stateCancelled:
			return m, nil, true
		default:
			m.cancelSale()
			return m, nil, true
		}
	case "q":
		if m.state == stateReceipt || m.state == stateCancelled {
			return m, tea.Quit, true
		}
	case "n":
		if m.state == stateReceipt || m.state == stateCancelled {
			m.startSale()
			return m, textinput.Blink, true
		}
		if m.state == stateConfirm {
			m.cancelSale()
			return m, nil, true
		}
	case "y":
		if m.state == stateConfirm {
			m.state = stateCommitting
			return m, tea.Batch(m.commitCmd(), m.spinner.Tick), true
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateEnterName:
			if err := m.sale.SetBuyer(m.nameInput.Value()); err != nil {
				m.notice = "Name must be non-empty, letters and spaces only."
				return m, nil, true
			}
			m.notice = ""
			m.state = stateSelectMovie
			return m, nil, true

		case stateSelectMovie:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			if err := m.sale.SelectMovie(item.movie.ID); err != nil {
				return m, errCmd(err), true
			}
			m.timeList.SetItems(buildTimeItems(item.movie))
			m.timeList.Select(0)
			m.state = stateSelectTime
			return m, nil, true

		case stateSelectTime:
			item, ok := m.timeList.SelectedItem().(timeItem)
			if !ok {
				return m, nil, true
			}
			if err := m.sale.SelectTime(item.label); err != nil {
				return m, errCmd(err), true
			}
			m.seatInput.Reset()
			m.seatInput.Focus()
			m.notice = ""
			m.state = stateSelectSeat
			return m, textinput.Blink, true

		case stateSelectSeat:
			label := strings.ToUpper(strings.TrimSpace(m.seatInput.Value()))
			err := m.sale.SelectSeat(label)
			switch {
			case err == nil:
				m.notice = ""
				m.typeList.Select(0)
				m.state = stateSelectType
			case service.IsConflict(err):
				m.notice = fmt.Sprintf("Seat %s is already sold, pick another.", label)
				m.seatInput.Reset()
			case service.IsInvalidInput(err):
				m.notice = fmt.Sprintf("No seat %s in this hall.", label)
				m.seatInput.Reset()
			default:
				return m, errCmd(err), true
			}
			return m, nil, true

		case stateSelectType:
			if err := m.sale.SelectType(m.typeList.Index() + 1); err != nil {
				m.notice = "Pick one of the listed ticket types."
				return m, nil, true
			}
			m.notice = ""
			m.state = stateConfirm
			return m, nil, true

		case stateConfirm:
			// Only an explicit y confirms; enter cancels.
			m.cancelSale()
			return m, nil, true

		case stateReceipt, stateCancelled:
			m.startSale()
			return m, textinput.Blink, true
		}
	}
	return m, nil, false
}

func (m *appModel) startSale() {
	m.sale = service.NewSale(m.catalog, m.pricing, m.session, m.ledger)
	m.nameInput.Reset()
	m.nameInput.Focus()
	m.seatInput.Reset()
	m.movieList.Select(0)
	m.notice = ""
	m.ticket = model.Ticket{}
	m.state = stateEnterName
}

func (m *appModel) cancelSale() {
	if m.sale != nil {
		m.sale.Cancel()
	}
	m.notice = ""
	m.state = stateCancelled
}

func (m appModel) loadSeatsCmd() tea.Cmd {
	return func() tea.Msg {
		return seatStateMsg{err: m.session.LoadOrInit()}
	}
}

func (m appModel) commitCmd() tea.Cmd {
	return func() tea.Msg {
		ticket, err := m.sale.Confirm()
		return commitMsg{ticket: ticket, err: err}
	}
}

func (m appModel) renderSeatGrid() string {
	seats, err := m.sale.SeatMap()
	if err != nil {
		return "No seat map data."
	}

	styleFree := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleSold := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	var b strings.Builder
	b.WriteString("  ")
	for c := 1; c <= m.cfg.Cols; c++ {
		b.WriteString(fmt.Sprintf(" %2d", c))
	}
	b.WriteString("\n")
	for _, r := range m.cfg.Rows {
		b.WriteString(r + " ")
		for c := 1; c <= m.cfg.Cols; c++ {
			if seats[model.SeatLabel(r, c)] {
				b.WriteString("  " + styleFree.Render("O"))
			} else {
				b.WriteString("  " + styleSold.Render("X"))
			}
		}
		b.WriteString("\n")
	}

	gridWidth := m.cfg.Cols*3 + 2
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	b.WriteString("\n")
	b.WriteString(screenStyle.Render(centerText("SCREEN", gridWidth)))
	b.WriteString("\n\n")
	b.WriteString(hint("O available • X sold"))
	b.WriteString("\n")
	return b.String()
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.timeList.SetSize(m.width, h)
	m.typeList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

// A commit failure closes the sale, so an error during committing
// recovers to the cancelled screen rather than back to confirmation.
func recoverStateFrom(state appState) appState {
	switch state {
	case stateCommitting:
		return stateCancelled
	default:
		return state
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string {
	return fmt.Sprintf("%d. %s", i.movie.ID, i.movie.Title)
}

func (i movieItem) Description() string {
	return "Showtimes: " + strings.Join(i.movie.Times, ", ")
}

func (i movieItem) FilterValue() string {
	return strings.ToLower(i.movie.Title)
}

type timeItem struct {
	label string
}

func (i timeItem) Title() string       { return i.label }
func (i timeItem) Description() string { return "" }
func (i timeItem) FilterValue() string { return i.label }

type typeItem struct {
	name  string
	price float64
}

func (i typeItem) Title() string       { return i.name }
func (i typeItem) Description() string { return model.FormatPrice(i.price) }
func (i typeItem) FilterValue() string { return strings.ToLower(i.name) }

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, movieItem{movie: m})
	}
	return items
}

func buildTimeItems(movie model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movie.Times))
	for _, t := range movie.Times {
		items = append(items, timeItem{label: t})
	}
	return items
}

func buildTypeItems(pricing *service.Pricing) []list.Item {
	types := pricing.Types()
	items := make([]list.Item, 0, len(types))
	for _, name := range types {
		price, _ := pricing.PriceOf(name)
		items = append(items, typeItem{name: name, price: price})
	}
	return items
}
