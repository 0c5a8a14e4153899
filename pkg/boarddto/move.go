package boarddto

// Move is one entry of the move log.
type Move struct {
	Number   int    `json:"number"`
	Piece    string `json:"piece"`
	Glyph    string `json:"glyph"`
	Color    string `json:"color"`
	From     string `json:"from"`
	To       string `json:"to"`
	Captured string `json:"captured,omitempty"`
}
