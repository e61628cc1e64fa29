package domain

// SourceSummary describes what one importer contributed to a run.
type SourceSummary struct {
	Account           string `json:"account"`
	Path              string `json:"path"`
	TransactionsRead  int    `json:"transactions_read"`
	TransactionsKept  int    `json:"transactions_kept"`
	OtherRowsFiltered int    `json:"other_rows_filtered"`
}

// Summary provides high-level statistics of an import run.
type Summary struct {
	ImportID                string `json:"import_id"`
	SnapshotDate            string `json:"snapshot_date,omitempty"`
	TotalTransactionsMerged int    `json:"total_transactions_merged"`
	TotalPositions          int    `json:"total_positions"`
	OpenPositions           int    `json:"open_positions"`
	RowsExported            int    `json:"rows_exported"`
}

// RunReport is the top-level structure for the final JSON output.
type RunReport struct {
	RunSummary Summary         `json:"run_summary"`
	Sources    []SourceSummary `json:"sources"`
	Positions  []Position      `json:"positions"`
}

// Source is one broker export to import, as listed in the sources file.
type Source struct {
	Account  string `yaml:"account" json:"account"`
	Path     string `yaml:"path" json:"path"`
	Encoding string `yaml:"encoding,omitempty" json:"encoding,omitempty"` // utf-8 (default) or euc-kr
}
