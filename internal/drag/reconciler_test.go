package drag_test

import (
	"testing"

	"retroboard/internal/drag"
	"retroboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// threeCards returns rects for cards of height 100 at 0, 100 and 200
func threeCards() []drag.CardRect {
	return []drag.CardRect{
		{ID: uuid.New(), Top: 0, Height: 100},
		{ID: uuid.New(), Top: 100, Height: 100},
		{ID: uuid.New(), Top: 200, Height: 100},
	}
}

func TestResolve_EmptyColumn(t *testing.T) {
	intent := drag.Resolve(50, nil, uuid.New())

	assert.False(t, intent.IsMerge())
	assert.Equal(t, 0, intent.Index)
}

func TestResolve_AboveFirstCard(t *testing.T) {
	rects := []drag.CardRect{{ID: uuid.New(), Top: 40, Height: 100}}

	intent := drag.Resolve(10, rects, uuid.New())

	assert.Equal(t, 0, intent.Index)
}

func TestResolve_BelowLastCard(t *testing.T) {
	rects := threeCards()

	intent := drag.Resolve(450, rects, uuid.New())

	assert.Equal(t, 3, intent.Index)
}

func TestResolve_TopZoneInsertsBefore(t *testing.T) {
	rects := threeCards()

	// Верхние 35% карточки с индексом 1: y в [100, 135)
	intent := drag.Resolve(110, rects, uuid.New())

	assert.False(t, intent.IsMerge())
	assert.Equal(t, 1, intent.Index)
}

func TestResolve_BottomZoneInsertsAfter(t *testing.T) {
	rects := threeCards()

	// Нижние 35% карточки с индексом 1: y в [165, 200)
	intent := drag.Resolve(180, rects, uuid.New())

	assert.False(t, intent.IsMerge())
	assert.Equal(t, 2, intent.Index)
}

func TestResolve_MiddleZoneIsMerge(t *testing.T) {
	rects := threeCards()

	// Средние 30% карточки с индексом 1: y в [135, 165)
	intent := drag.Resolve(150, rects, uuid.New())

	assert.True(t, intent.IsMerge())
	assert.Equal(t, rects[1].ID, intent.MergeTarget)
}

func TestResolve_MiddleOfDraggedCardIsNotMerge(t *testing.T) {
	rects := threeCards()

	// Карточка не сливается сама с собой
	intent := drag.Resolve(150, rects, rects[1].ID)

	assert.False(t, intent.IsMerge())
	assert.Equal(t, 1, intent.Index)
}

func TestResolve_GapBetweenCards(t *testing.T) {
	// Карточки с зазором: y попадает между ними
	rects := []drag.CardRect{
		{ID: uuid.New(), Top: 0, Height: 100},
		{ID: uuid.New(), Top: 120, Height: 100},
	}

	intent := drag.Resolve(110, rects, uuid.New())

	assert.Equal(t, 1, intent.Index)
}

func TestReconciler_LatestIntentWins(t *testing.T) {
	// Arrange
	rects := threeCards()
	dragged := uuid.New()
	r := drag.NewReconciler(dragged, model.ColumnWentWell)

	// Act: сперва слияние, затем позиционное намерение, остается последнее
	merge := r.Update(model.ColumnWentWell, 150, rects)
	assert.True(t, merge.IsMerge())

	positional := r.Update(model.ColumnToImprove, 110, rects)
	assert.False(t, positional.IsMerge())

	// Assert
	move := r.Drop()
	assert.Equal(t, dragged, move.DraggedCardID)
	assert.Equal(t, model.ColumnWentWell, move.SourceColumnID)
	assert.Equal(t, model.ColumnToImprove, move.DestColumnID)
	assert.Equal(t, 1, move.DestinationIndex)
	assert.Equal(t, uuid.Nil, move.MergeTargetCardID)
}

func TestReconciler_MergeEncoding(t *testing.T) {
	// Arrange
	rects := threeCards()
	dragged := uuid.New()
	r := drag.NewReconciler(dragged, model.ColumnWentWell)

	// Act
	r.Update(model.ColumnToImprove, 150, rects)
	move := r.Drop()

	// Assert: слияние кодируется зарезервированным индексом -1
	assert.Equal(t, model.MergeIndex, move.DestinationIndex)
	assert.Equal(t, rects[1].ID, move.MergeTargetCardID)
}

func TestReconciler_DropWithoutUpdate(t *testing.T) {
	// Arrange
	dragged := uuid.New()
	r := drag.NewReconciler(dragged, model.ColumnActionItems)

	// Act
	move := r.Drop()

	// Assert: без движения указателя карточка возвращается в начало исходной колонки
	assert.Equal(t, model.ColumnActionItems, move.DestColumnID)
	assert.Equal(t, 0, move.DestinationIndex)
	assert.Equal(t, uuid.Nil, move.MergeTargetCardID)
}
