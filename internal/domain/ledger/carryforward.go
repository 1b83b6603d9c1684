package ledger

import "strings"

// CarryForward computes the seed rows for a newly opened date from the
// previous date's rows. This is the core accounting rule of the ledger: a
// guest whose closing balance is not zero reappears on the next day with that
// balance brought forward, so an unsettled debt is never silently lost. A
// guest who settled to zero, or a line with no guest name, is dropped.
//
// Each seed row copies guest name, folio and pax, opens with the prior
// closing balance, and starts every charge and payment column at zero. Seed
// rows are unsaved (nil ID) until the new day is explicitly saved.
//
// When nothing qualifies the result is empty; the caller substitutes a blank
// row.
func CarryForward(date string, previous []*Row) []*Row {
	var seeds []*Row
	for _, prev := range previous {
		if strings.TrimSpace(prev.GuestName) == "" {
			continue
		}
		balance := prev.BalanceCarriedForward()
		if balance == 0 {
			continue
		}

		seed := NewRow(date)
		seed.GuestName = prev.GuestName
		seed.Folio = prev.Folio
		seed.Pax = prev.Pax
		seed.BalanceBroughtForward = balance
		seeds = append(seeds, seed)
	}
	Renumber(seeds)
	return seeds
}
