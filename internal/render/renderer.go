package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"github.com/park285/ajedrez/internal/board"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	DefaultSquareSize = 72
	MinSquareSize     = 24
)

var ErrSquareSize = errors.New("square size too small")

// LastMove marks the origin and destination of the previous move.
type LastMove struct {
	From board.Square
	To   board.Square
}

type Options struct {
	Selected  *board.Square
	Targets   []board.Square
	LastMove  *LastMove
	HUDHeader string
	HUDTurn   string
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, b board.Board, opts Options) ([]byte, error)
}

type svgBoardRenderer struct {
	layout layout
}

// NewSVGBoardRenderer draws boards with squares of squareSize pixels.
func NewSVGBoardRenderer(squareSize int) (BoardRenderer, error) {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	if squareSize < MinSquareSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrSquareSize, squareSize, MinSquareSize)
	}
	return &svgBoardRenderer{layout: newLayout(squareSize)}, nil
}

type layout struct {
	squareSize  int
	sideMargin  int
	topMargin   int
	panelHeight int
	panelRadius int
	panelPadX   int
	shadowY     int
}

func newLayout(squareSize int) layout {
	side := squareSize / 2
	if side < 20 {
		side = 20
	}
	const panelHeight = 32
	return layout{
		squareSize:  squareSize,
		sideMargin:  side,
		topMargin:   panelHeight + 28,
		panelHeight: panelHeight,
		panelRadius: 10,
		panelPadX:   18,
		shadowY:     4,
	}
}

func (l layout) boardSize() int { return l.squareSize * board.Size }

func (l layout) origin() image.Point { return image.Point{X: l.sideMargin, Y: l.topMargin} }

func (l layout) bounds() image.Rectangle {
	return image.Rect(0, 0, l.boardSize()+l.sideMargin*2, l.topMargin+l.boardSize()+l.sideMargin)
}

func (l layout) squareRect(sq board.Square) image.Rectangle {
	o := l.origin()
	x := o.X + sq.Col*l.squareSize
	y := o.Y + sq.Row*l.squareSize
	return image.Rect(x, y, x+l.squareSize, y+l.squareSize)
}

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, b board.Board, opts Options) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	l := r.layout
	img := image.NewRGBA(l.bounds())
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	drawBoardShadow(img, image.Rectangle{Min: l.origin(), Max: l.origin().Add(image.Pt(l.boardSize(), l.boardSize()))})
	drawSquares(img, l)
	if m := opts.LastMove; m != nil {
		drawSquareOverlay(img, l, m.From, lastMoveFill)
		drawSquareOverlay(img, l, m.To, lastMoveFill)
	}
	if opts.Selected != nil {
		drawSquareOverlay(img, l, *opts.Selected, selectionFill)
	}
	if err := drawPieces(img, b, l); err != nil {
		return nil, err
	}
	drawTargets(img, b, opts.Targets, l)
	drawCoordinates(img, l)
	drawHUD(img, opts, l)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

var (
	backgroundColor     = color.RGBA{R: 22, G: 24, B: 34, A: 255}
	lightSquare         = color.RGBA{233, 207, 163, 255}
	darkSquare          = color.RGBA{187, 136, 96, 255}
	lastMoveFill        = color.NRGBA{R: 255, G: 228, B: 120, A: 120}
	selectionFill       = color.NRGBA{R: 120, G: 200, B: 90, A: 150}
	targetDotColor      = color.NRGBA{R: 30, G: 90, B: 40, A: 150}
	captureFill         = color.NRGBA{R: 220, G: 60, B: 50, A: 120}
	hudPanelColor       = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	hudTurnPanelColor   = color.NRGBA{R: 40, G: 44, B: 64, A: 250}
	hudShadowColor      = color.NRGBA{0, 0, 0, 50}
	hudTextPrimary      = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	hudTurnTextColor    = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
	boardShadowColor    = color.NRGBA{0, 0, 0, 60}
	coordinateTextColor = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

func captionFace() font.Face { return basicfont.Face7x13 }

func drawBoardShadow(img *image.RGBA, boardRect image.Rectangle) {
	shadowRect := image.Rect(
		boardRect.Min.X+4,
		boardRect.Min.Y+6,
		boardRect.Max.X+6,
		boardRect.Max.Y+8,
	)
	imagedraw.Draw(img, shadowRect, image.NewUniform(boardShadowColor), image.Point{}, imagedraw.Over)
}

func drawSquares(dst imagedraw.Image, l layout) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			imagedraw.Draw(dst, l.squareRect(sq), image.NewUniform(squareColor(sq)), image.Point{}, imagedraw.Src)
		}
	}
}

// squareColor: a1 (row 7, col 0) is dark.
func squareColor(sq board.Square) color.Color {
	if (sq.Row+sq.Col)%2 == 1 {
		return darkSquare
	}
	return lightSquare
}

func drawPieces(dst imagedraw.Image, b board.Board, l layout) error {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				continue
			}
			img, err := renderPieceImage(piece, l.squareSize)
			if err != nil {
				return err
			}
			imagedraw.Draw(dst, l.squareRect(board.Sq(row, col)), img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

// drawTargets puts a dot on empty destinations and tints capturable ones.
func drawTargets(img *image.RGBA, b board.Board, targets []board.Square, l layout) {
	for _, sq := range targets {
		if !sq.InBounds() {
			continue
		}
		if !b.At(sq).IsEmpty() {
			drawSquareOverlay(img, l, sq, captureFill)
			continue
		}
		rect := l.squareRect(sq)
		center := image.Pt(rect.Min.X+l.squareSize/2, rect.Min.Y+l.squareSize/2)
		drawDisc(img, center, l.squareSize/7, targetDotColor)
	}
}

func drawSquareOverlay(img *image.RGBA, l layout, sq board.Square, clr color.Color) {
	if img == nil || !sq.InBounds() {
		return
	}
	imagedraw.Draw(img, l.squareRect(sq), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func drawCoordinates(dst imagedraw.Image, l layout) {
	face := captionFace()
	drawer := &font.Drawer{
		Dst:  dst,
		Face: face,
		Src:  image.NewUniform(coordinateTextColor),
	}
	ascent := face.Metrics().Ascent.Ceil()
	o := l.origin()
	boardEndY := o.Y + l.boardSize()

	for i := 0; i < board.Size; i++ {
		rankCenter := o.Y + i*l.squareSize + l.squareSize/2
		drawCenteredText(drawer, board.Notation(i, 0)[1:], o.X-l.sideMargin/2, rankCenter+ascent/2)

		fileCenter := o.X + i*l.squareSize + l.squareSize/2
		drawCenteredText(drawer, board.Notation(board.Size-1, i)[:1], fileCenter, boardEndY+(l.sideMargin+ascent)/2)
	}
}

// drawHUD places the header panel on the left and the turn panel on the right
// above the board.
func drawHUD(img *image.RGBA, opts Options, l layout) {
	face := captionFace()
	drawer := &font.Drawer{Dst: img, Face: face}

	title := strings.TrimSpace(opts.HUDHeader)
	turnText := strings.TrimSpace(opts.HUDTurn)
	if title == "" && turnText == "" {
		return
	}

	o := l.origin()
	bottom := o.Y - 14
	top := bottom - l.panelHeight
	half := l.boardSize()/2 - 6

	if title != "" {
		width := clampWidth(drawer.MeasureString(title).Round()+l.panelPadX*2, half)
		rect := image.Rect(o.X, top, o.X+width, bottom)
		drawRoundedPanel(img, rect.Add(image.Pt(0, l.shadowY)), l.panelRadius, hudShadowColor)
		drawRoundedPanel(img, rect, l.panelRadius, hudPanelColor)
		drawCenteredString(drawer, rect, truncateWithEllipsis(face, title, rect.Dx()-l.panelPadX*2), hudTextPrimary)
	}
	if turnText != "" {
		width := clampWidth(drawer.MeasureString(turnText).Round()+l.panelPadX*2, half)
		right := o.X + l.boardSize()
		rect := image.Rect(right-width, top, right, bottom)
		drawRoundedPanel(img, rect.Add(image.Pt(0, l.shadowY)), l.panelRadius, hudShadowColor)
		drawRoundedPanel(img, rect, l.panelRadius, hudTurnPanelColor)
		drawCenteredString(drawer, rect, truncateWithEllipsis(face, turnText, rect.Dx()-l.panelPadX*2), hudTurnTextColor)
	}
}

func clampWidth(w, max int) int {
	if w > max {
		return max
	}
	return w
}
