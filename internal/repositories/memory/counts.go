package memory

// Counts reports how many documents of each kind the store holds.
type Counts struct {
	Sites                  int
	Phases                 int
	Purchases              int
	Rentals                int
	ClientTransactions     int
	Attendances            int
	Stocks                 int
	StockUsages            int
	ContractorTransactions int
	Notifications          int
	Accounts               int
}

// Counts snapshots the document counts, for inspecting the store after a rollback.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Counts{
		Sites:                  len(s.sites),
		Phases:                 len(s.phases),
		Purchases:              len(s.purchases),
		Rentals:                len(s.rentals),
		ClientTransactions:     len(s.clientTxns),
		Attendances:            len(s.attendances),
		Stocks:                 len(s.stocks),
		StockUsages:            len(s.stockUsages),
		ContractorTransactions: len(s.contractorTxs),
		Notifications:          len(s.notifications),
		Accounts:               len(s.accounts),
	}
}
