package presenter

import (
	"strconv"
	"strings"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/internal/movegen"
	"github.com/park285/ajedrez/internal/msgcat"
)

const files = "abcdefgh"

// Formatter renders board state into user-facing text using the message catalog.
type Formatter struct {
	cat *msgcat.Catalog
}

// NewFormatter falls back to the embedded catalog when cat is nil.
func NewFormatter(cat *msgcat.Catalog) *Formatter {
	if cat == nil {
		cat = msgcat.Default()
	}
	return &Formatter{cat: cat}
}

func (f *Formatter) text(key string, data map[string]any, fallback string) string {
	if f == nil {
		return fallback
	}
	return f.cat.Text(key, data, fallback)
}

// Side names a color, e.g. "Blancas".
func (f *Formatter) Side(c board.Color) string {
	switch c {
	case board.White:
		return f.text("color.white", nil, "Blancas")
	case board.Black:
		return f.text("color.black", nil, "Negras")
	default:
		return ""
	}
}

// Turn returns the side-to-move label, e.g. "Turno: Blancas".
func (f *Formatter) Turn(c board.Color) string {
	side := f.Side(c)
	return f.text("turn", map[string]any{"Side": side}, "Turno: "+side)
}

func (f *Formatter) HistoryTitle() string {
	return f.text("history.title", nil, "Historial de jugadas")
}

func (f *Formatter) HistoryEmpty() string {
	return f.text("history.empty", nil, "Todavía no hay jugadas.")
}

func (f *Formatter) UndoLabel() string {
	return f.text("action.undo", nil, "Deshacer jugada")
}

func (f *Formatter) NewGameLabel() string {
	return f.text("action.new_game", nil, "Nueva partida")
}

func (f *Formatter) PageTitle() string {
	return f.text("page.title", nil, "Ajedrez")
}

// MoveLine formats one log entry, e.g. "Jugada 3: ♙ e4 → d5  x ♟".
func (f *Formatter) MoveLine(m game.MoveRecord) string {
	glyph := Glyph(m.Piece)
	from, to := m.From.String(), m.To.String()
	line := f.text("history.entry", map[string]any{
		"Number": m.Number, "Glyph": glyph, "From": from, "To": to,
	}, "Jugada "+strconv.Itoa(m.Number)+": "+glyph+" "+from+" → "+to)
	if m.HasCapture() {
		captured := Glyph(m.Captured)
		line += f.text("history.capture", map[string]any{"Captured": captured}, "  x "+captured)
	}
	return line
}

// HUDLastMove is the ASCII-only header drawn on the board image.
func (f *Formatter) HUDLastMove(m game.MoveRecord) string {
	from, to := m.From.String(), m.To.String()
	return f.text("hud.last_move", map[string]any{"Number": m.Number, "From": from, "To": to},
		"Jugada "+strconv.Itoa(m.Number)+": "+from+"-"+to)
}

// HistoryLines lists the log newest first, as the history panel shows it.
func (f *Formatter) HistoryLines(moves []game.MoveRecord) []string {
	out := make([]string, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		out = append(out, f.MoveLine(moves[i]))
	}
	return out
}

// History is the title plus HistoryLines, or a placeholder for an empty log.
func (f *Formatter) History(moves []game.MoveRecord) string {
	var sb strings.Builder
	sb.WriteString(f.HistoryTitle())
	sb.WriteString("\n")
	if len(moves) == 0 {
		sb.WriteString(f.HistoryEmpty())
		return sb.String()
	}
	sb.WriteString(strings.Join(f.HistoryLines(moves), "\n"))
	return sb.String()
}

// BoardText draws the grid for a terminal, rank 8 at the top. The selected
// square is bracketed and highlighted destinations carry a "*".
func (f *Formatter) BoardText(b board.Board, selection *board.Square, legal []board.Square) string {
	var sb strings.Builder
	writeFiles := func() {
		sb.WriteString("   ")
		for col := 0; col < board.Size; col++ {
			sb.WriteString(" ")
			sb.WriteByte(files[col])
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	writeFiles()
	for row := 0; row < board.Size; row++ {
		rank := strconv.Itoa(board.Size - row)
		sb.WriteString(" " + rank + " ")
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			sb.WriteString(cell(b.At(sq), selection != nil && *selection == sq, movegen.Contains(legal, sq)))
		}
		sb.WriteString(" " + rank + "\n")
	}
	writeFiles()
	return sb.String()
}

func cell(p board.Piece, selected, target bool) string {
	content := Glyph(p)
	if content == "" {
		content = "·"
	}
	switch {
	case selected:
		return "[" + content + "]"
	case target && p.IsEmpty():
		return " * "
	case target:
		return "*" + content + "*"
	default:
		return " " + content + " "
	}
}

// Feedback describes the outcome of a click on sq for the console.
func (f *Formatter) Feedback(action game.Action, g *game.State, sq board.Square) string {
	switch action {
	case game.ActionSelected, game.ActionReselected:
		b := g.Board()
		return f.text("console.selected", map[string]any{
			"Glyph": Glyph(b.At(sq)), "Square": sq.String(), "Count": len(g.LegalMoves()),
		}, Glyph(b.At(sq))+" "+sq.String())
	case game.ActionDeselected:
		return f.text("console.deselected", nil, "Selección cancelada.")
	case game.ActionMoved:
		last, ok := g.LastMove()
		if !ok {
			return ""
		}
		return f.MoveLine(last)
	default:
		return f.text("console.ignored", map[string]any{"Square": sq.String()}, sq.String())
	}
}

func (f *Formatter) Undone(ok bool) string {
	if !ok {
		return f.text("console.nothing_to_undo", nil, "No hay jugadas para deshacer.")
	}
	return f.text("console.undone", nil, "Jugada deshecha.")
}

func (f *Formatter) Help() string {
	return strings.TrimRight(f.text("console.help", nil, "undo | board | history | fen | help | quit"), "\n")
}

func (f *Formatter) Unknown(input string) string {
	return f.text("console.unknown", map[string]any{"Input": input}, "?")
}

func (f *Formatter) Prompt(c board.Color) string {
	turn := f.Turn(c)
	return f.text("console.prompt", map[string]any{"Turn": turn}, turn+" > ")
}

func (f *Formatter) Bye() string {
	return f.text("console.bye", nil, "")
}
