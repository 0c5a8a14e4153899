package boarddto

// SelectRequest is the body of POST /api/games/{id}/select.
type SelectRequest struct {
	Square string `json:"square"`
}

// SelectResponse reports what the click did and the resulting board.
type SelectResponse struct {
	Action string    `json:"action"`
	Board  *Snapshot `json:"board"`
}

// UndoResponse reports whether a move was reverted.
type UndoResponse struct {
	Undone bool      `json:"undone"`
	Board  *Snapshot `json:"board"`
}
