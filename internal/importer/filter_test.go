package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestFilterByTemplates(t *testing.T) {
	templates := []model.BoardTemplate{
		{Width: 2000, Height: 500, Thickness: 18},
		{Width: 2000, Height: 500, Thickness: 16},
	}
	pieces := []model.Piece{
		model.NewPiece("A", 100, 100, 18),
		model.NewPiece("B", 100, 100, 5),
		model.NewPiece("C", 100, 100, 16),
		model.NewPiece("D", 100, 100, 5),
		model.NewPiece("E", 100, 100, 3),
	}

	kept, excluded := FilterByTemplates(pieces, templates)

	require.Len(t, kept, 2)
	assert.Equal(t, "A", kept[0].Name)
	assert.Equal(t, "C", kept[1].Name)
	assert.Equal(t, []ExcludedGroup{{Thickness: 5, Count: 2}, {Thickness: 3, Count: 1}}, excluded)
}

func TestFilterByTemplates_AllKept(t *testing.T) {
	templates := []model.BoardTemplate{{Width: 1000, Height: 1000, Thickness: 18}}
	pieces := ExpandQuantity("Side", 300, 200, 18, 4)

	kept, excluded := FilterByTemplates(pieces, templates)

	assert.Len(t, kept, 4)
	assert.Empty(t, excluded)
}

func TestPreview(t *testing.T) {
	pieces := append(ExpandQuantity("Shelf", 600, 300, 18, 3), ExpandQuantity("Door", 400, 800, 19, 1)...)

	rows := Preview(pieces, 0)

	require.Len(t, rows, 2)
	assert.Equal(t, PreviewRow{Name: "Shelf", Width: 600, Height: 300, Thickness: 18, Quantity: 3}, rows[0])
	assert.Equal(t, PreviewRow{Name: "Door", Width: 400, Height: 800, Thickness: 19, Quantity: 1}, rows[1])

	assert.Len(t, Preview(pieces, 1), 1)
}

func TestPreview_TruncatedCopies(t *testing.T) {
	pieces := ExpandQuantity("Shelf", 600, 300, 18, 3)[:2]

	rows := Preview(pieces, 0)

	require.Len(t, rows, 1)
	assert.Equal(t, "Shelf", rows[0].Name)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestPreview_CopyLikeNameDoesNotHideNextLine(t *testing.T) {
	pieces := []model.Piece{
		model.NewPiece("Panel (1/2)", 500, 400, 18),
		model.NewPiece("Door", 400, 800, 19),
	}

	rows := Preview(pieces, 0)

	require.Len(t, rows, 2)
	assert.Equal(t, PreviewRow{Name: "Panel", Width: 500, Height: 400, Thickness: 18, Quantity: 1}, rows[0])
	assert.Equal(t, "Door", rows[1].Name)
}

func TestPreview_LimitKeepsCountingShownRows(t *testing.T) {
	pieces := append(ExpandQuantity("Shelf", 600, 300, 18, 2), ExpandQuantity("Door", 400, 800, 19, 1)...)
	pieces = append(pieces, model.NewPiece("Shelf", 600, 300, 18))

	rows := Preview(pieces, 1)

	require.Len(t, rows, 1)
	assert.Equal(t, "Shelf", rows[0].Name)
	assert.Equal(t, 3, rows[0].Quantity)
}
