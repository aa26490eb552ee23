package loader

import "github.com/andresuchdata/inventory-dashboard/internal/domain"

// JoinStock left-joins stock rows to purchases on NameToDisplay == EntryID.
// A stock row matching several purchases is repeated once per purchase, in
// purchase order; an unmatched row is kept once with no entry date.
func JoinStock(stock []domain.StockRecord, purchases []domain.PurchaseRecord) []domain.JoinedStock {
	byID := make(map[string][]int, len(purchases))
	for i, p := range purchases {
		byID[p.EntryID] = append(byID[p.EntryID], i)
	}

	joined := make([]domain.JoinedStock, 0, len(stock))
	for _, s := range stock {
		matches := byID[s.NameToDisplay]
		if len(matches) == 0 {
			joined = append(joined, domain.JoinedStock{StockRecord: s})
			continue
		}
		for _, i := range matches {
			joined = append(joined, domain.JoinedStock{
				StockRecord: s,
				EntryID:     purchases[i].EntryID,
				EntryDate:   purchases[i].EntryDate,
				Matched:     true,
			})
		}
	}
	return joined
}
