package service

// TicketType pairs a ticket-type name with its price.
type TicketType struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Pricing maps ticket-type names to prices. Types keep their
// configuration insertion order; the table is read-only after
// construction.
type Pricing struct {
	types  []string
	prices map[string]float64
}

func NewPricing(types []TicketType) *Pricing {
	p := &Pricing{prices: make(map[string]float64, len(types))}
	for _, t := range types {
		if _, dup := p.prices[t.Name]; dup {
			continue
		}
		p.types = append(p.types, t.Name)
		p.prices[t.Name] = t.Price
	}
	return p
}

// Types returns the ticket-type names in insertion order.
func (p *Pricing) Types() []string {
	out := make([]string, len(p.types))
	copy(out, p.types)
	return out
}

// PriceOf returns the price for a known ticket type.
func (p *Pricing) PriceOf(name string) (float64, error) {
	price, ok := p.prices[name]
	if !ok {
		return 0, ErrNotFound
	}
	return price, nil
}
