package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cinema-box-office/model"
)

// Ledger is the append-only record of completed sales, kept as a CSV
// file. The first append writes the header row; the file is never
// rewritten after that.
type Ledger struct {
	path string
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Append adds one ticket to the ledger.
func (l *Ledger) Append(ticket model.Ticket) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Path: l.path, Err: err}
		}
	}

	info, err := os.Stat(l.path)
	fresh := err != nil || info.Size() == 0

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Path: l.path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(model.LedgerHeader); err != nil {
			return &StorageError{Path: l.path, Err: err}
		}
	}
	if err := w.Write(ticket.Row()); err != nil {
		return &StorageError{Path: l.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Path: l.path, Err: err}
	}
	return nil
}

// List reads every ticket back in append order. A missing ledger is an
// empty ledger.
func (l *Ledger) List() ([]model.Ticket, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Path: l.path, Err: err}
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &StorageError{Path: l.path, Err: err}
	}

	var tickets []model.Ticket
	for i, record := range records {
		if i == 0 || len(record) != len(model.LedgerHeader) {
			continue
		}
		price, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, &StorageError{Path: l.path, Err: fmt.Errorf("row %d: bad price %q: %w", i, record[5], err)}
		}
		tickets = append(tickets, model.Ticket{
			Timestamp: record[0],
			Movie:     record[1],
			Time:      record[2],
			Seat:      record[3],
			Type:      record[4],
			Price:     price,
			Buyer:     record[6],
		})
	}
	return tickets, nil
}
