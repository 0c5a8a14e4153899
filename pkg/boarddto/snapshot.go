package boarddto

// Snapshot is the read-only view of one board sent to clients.
type Snapshot struct {
	ID    string `json:"id"`
	FEN   string `json:"fen"`
	Turn  string `json:"turn"`
	Phase string `json:"phase"`

	// Grid holds piece glyphs row by row, rank 8 first; empty squares are "".
	Grid [8][8]string `json:"grid"`

	Selected   string   `json:"selected,omitempty"`
	LegalMoves []string `json:"legalMoves"`
	LastMove   *Move    `json:"lastMove,omitempty"`
	Moves      []Move   `json:"moves"`
	CanUndo    bool     `json:"canUndo"`
}
