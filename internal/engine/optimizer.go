package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ErrNothingToOptimize is returned by CheckInput when no piece can be packed.
var ErrNothingToOptimize = errors.New("nothing to optimize")

// scanEpsilon absorbs float error in the upper scan bound when kerf or
// margin are fractional.
const scanEpsilon = 1e-9

// Optimizer runs the greedy first-fit board packing.
type Optimizer struct {
	Settings model.Settings
	logger   logr.Logger
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger routes skip/drop/placement traces to l.
func WithLogger(l logr.Logger) Option {
	return func(o *Optimizer) {
		o.logger = l
	}
}

func New(settings model.Settings, opts ...Option) *Optimizer {
	o := &Optimizer{Settings: settings, logger: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CheckInput reports ErrNothingToOptimize when pieces is empty or none of
// them has a matching board template.
func CheckInput(pieces []model.Piece, templates []model.BoardTemplate) error {
	for _, p := range pieces {
		if _, ok := model.FindTemplate(templates, p.Thickness); ok {
			return nil
		}
	}
	return ErrNothingToOptimize
}

// Optimize packs pieces onto boards instantiated from templates.
// Pieces are grouped by thickness; each group uses the first template with
// the same thickness. Groups without a template and pieces that fit no empty
// board are reported in Result.Unplaced rather than failing the run. Groups
// are packed thinnest first and board IDs are sequential across them in that
// order, whether or not Settings.Parallel is set.
func (o *Optimizer) Optimize(ctx context.Context, pieces []model.Piece, templates []model.BoardTemplate) (model.Result, error) {
	if err := o.Settings.Validate(); err != nil {
		return model.Result{}, fmt.Errorf("invalid settings: %w", err)
	}

	groups := groupByThickness(pieces)
	results := make([]groupResult, len(groups))

	if o.Settings.Parallel && len(groups) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for i := range groups {
			g.Go(func() error {
				r, err := o.packGroup(gctx, groups[i], templates)
				results[i] = r
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return model.Result{}, err
		}
	} else {
		for i, grp := range groups {
			r, err := o.packGroup(ctx, grp, templates)
			if err != nil {
				return model.Result{}, err
			}
			results[i] = r
		}
	}

	result := model.Result{Boards: []model.Board{}}
	nextID := 1
	for _, r := range results {
		for _, b := range r.boards {
			b.ID = nextID
			nextID++
			result.Boards = append(result.Boards, b)
		}
		result.Unplaced = append(result.Unplaced, r.unplaced...)
	}
	result.Offcuts = model.DetectAllOffcuts(result.Boards, o.Settings.Kerf)
	result.Stats = Summarize(result.Boards, len(pieces))

	o.logger.V(1).Info("Optimization finished",
		"boards", result.Stats.TotalBoards,
		"placed", result.Stats.PlacedPieces,
		"unplaced", len(result.Unplaced),
		"offcuts", len(result.Offcuts),
		"efficiency", result.Stats.Efficiency)
	return result, nil
}

// thicknessGroup holds the pieces sharing one thickness, in input order.
type thicknessGroup struct {
	thickness float64
	pieces    []model.Piece
}

// groupByThickness partitions pieces by exact thickness. Groups are sorted by
// ascending thickness; pieces keep input order within a group.
func groupByThickness(pieces []model.Piece) []thicknessGroup {
	index := make(map[float64]int)
	var groups []thicknessGroup
	for _, p := range pieces {
		i, ok := index[p.Thickness]
		if !ok {
			i = len(groups)
			index[p.Thickness] = i
			groups = append(groups, thicknessGroup{thickness: p.Thickness})
		}
		groups[i].pieces = append(groups[i].pieces, p)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].thickness < groups[j].thickness
	})
	return groups
}

// groupResult is the outcome of packing one thickness group. Board IDs are
// local to the group until Optimize renumbers them.
type groupResult struct {
	boards   []model.Board
	unplaced []model.UnplacedPiece
}

// workBoard pairs an output board with the occupied-space index used while
// packing it. The index never leaves the engine.
type workBoard struct {
	board model.Board
	used  occupiedIndex
}

// packGroup packs one thickness group onto as many boards as it needs.
func (o *Optimizer) packGroup(ctx context.Context, grp thicknessGroup, templates []model.BoardTemplate) (groupResult, error) {
	var res groupResult
	logger := o.logger.WithValues("thickness", grp.thickness)

	tpl, ok := model.FindTemplate(templates, grp.thickness)
	if !ok {
		logger.Info("No board template for thickness, skipping pieces", "pieces", len(grp.pieces))
		for _, p := range grp.pieces {
			res.unplaced = append(res.unplaced, model.UnplacedPiece{Piece: p, Reason: model.ReasonNoTemplate})
		}
		return res, nil
	}

	// Largest first; equal areas keep input order.
	ordered := make([]model.Piece, len(grp.pieces))
	copy(ordered, grp.pieces)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Area() > ordered[j].Area()
	})

	var boards []*workBoard
	for _, piece := range ordered {
		if err := ctx.Err(); err != nil {
			return groupResult{}, err
		}

		placed := false
		for _, wb := range boards {
			ok, err := o.tryPlace(ctx, wb, piece)
			if err != nil {
				return groupResult{}, err
			}
			if ok {
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		wb := &workBoard{board: model.NewBoard(len(boards)+1, tpl)}
		ok, err := o.tryPlace(ctx, wb, piece)
		if err != nil {
			return groupResult{}, err
		}
		if ok {
			boards = append(boards, wb)
			logger.V(1).Info("Opened new board", "board", len(boards), "piece", piece.Name)
			continue
		}

		logger.Info("Piece too large for board, dropping",
			"piece", piece.Name, "width", piece.Width, "height", piece.Height,
			"boardWidth", tpl.Width, "boardHeight", tpl.Height)
		res.unplaced = append(res.unplaced, model.UnplacedPiece{Piece: piece, Reason: model.ReasonTooLarge})
	}

	res.boards = make([]model.Board, len(boards))
	for i, wb := range boards {
		res.boards[i] = wb.board
	}
	return res, nil
}

// orientation is one way of laying a piece on the board.
type orientation struct {
	w, h    float64
	rotated bool
}

func orientations(p model.Piece) []orientation {
	normal := orientation{w: p.Width, h: p.Height}
	if p.Width == p.Height {
		return []orientation{normal}
	}
	return []orientation{normal, {w: p.Height, h: p.Width, rotated: true}}
}

// tryPlace searches wb for the first free grid position for piece, trying the
// unrotated orientation first. On success it records the placement and claims
// the kerf-inflated footprint. ctx is checked once per scanned row.
func (o *Optimizer) tryPlace(ctx context.Context, wb *workBoard, piece model.Piece) (bool, error) {
	kerf := o.Settings.Kerf
	margin := o.Settings.Margin
	step := o.Settings.Step
	b := &wb.board

	for _, orient := range orientations(piece) {
		fw := orient.w + kerf
		fh := orient.h + kerf
		if fw > b.Width || fh > b.Height {
			continue
		}

		maxY := b.Height - fh - margin + scanEpsilon
		maxX := b.Width - fw - margin + scanEpsilon
		if maxY < margin || maxX < margin {
			continue
		}
		rows := int(math.Floor((maxY-margin)/step)) + 1
		cols := int(math.Floor((maxX-margin)/step)) + 1

		for iy := 0; iy < rows; iy++ {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			y := margin + float64(iy)*step
			for ix := 0; ix < cols; ix++ {
				x := margin + float64(ix)*step
				fp := model.Rect{X: x, Y: y, W: fw, H: fh}
				if wb.used.overlaps(fp) {
					continue
				}
				b.Pieces = append(b.Pieces, model.PlacedPiece{
					Piece:        piece,
					X:            x,
					Y:            y,
					PlacedWidth:  orient.w,
					PlacedHeight: orient.h,
					Rotated:      orient.rotated,
				})
				wb.used.insert(fp)
				o.logger.V(2).Info("Placed piece",
					"piece", piece.Name, "x", x, "y", y, "rotated", orient.rotated,
					"occupied", wb.used.len())
				return true, nil
			}
		}
	}
	return false, nil
}
