package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, buildTestResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportLabels_EmptyResult(t *testing.T) {
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), model.Result{})
	assert.True(t, errors.Is(err, ErrNoBoards), "got %v", err)
}

func TestExportLabels_NoPlacements(t *testing.T) {
	result := model.Result{
		Boards: []model.Board{model.NewBoard(1, model.BoardTemplate{Width: 1000, Height: 500, Thickness: 18})},
	}

	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), result)
	assert.ErrorIs(t, err, ErrNoPieces)
}

func TestCollectLabelInfos(t *testing.T) {
	result := buildTestResult()

	labels := CollectLabelInfos(result)

	require.Len(t, labels, 4)
	assert.Equal(t, "Side Panel (1/2)", labels[0].Name)
	assert.Equal(t, 1, labels[0].BoardID)
	assert.Equal(t, 18.0, labels[0].Thickness)

	assert.Equal(t, "Étagère", labels[2].Name)
	assert.True(t, labels[2].Rotated)
	assert.Equal(t, 300.0, labels[2].Width, "label carries the piece's own dimensions")

	assert.Equal(t, 2, labels[3].BoardID)
	assert.Equal(t, result.Boards[1].Pieces[0].Piece.ID, labels[3].PieceID)
}

func TestLabelInfo_JSONFields(t *testing.T) {
	info := LabelInfo{PieceID: "ab12cd34", Name: "Shelf", Width: 600, Height: 300, Thickness: 18, BoardID: 2, X: 4, Y: 14}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "ab12cd34", fields["id"])
	assert.Equal(t, 18.0, fields["thickness_mm"])
	assert.Equal(t, 2.0, fields["board"])
}

func TestExportLabels_ManyPieces(t *testing.T) {
	board := model.NewBoard(1, model.BoardTemplate{Width: 2440, Height: 1220, Thickness: 18})
	for i := 0; i < 65; i++ {
		board.Pieces = append(board.Pieces, placed(fmt.Sprintf("A rather long piece name number %d", i+1), 100, 100, 18, float64(i%20)*110, float64(i/20)*110, false))
	}

	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, model.Result{Boards: []model.Board{board}}))
}
