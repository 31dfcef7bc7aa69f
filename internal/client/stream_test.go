package client

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEvents_DispatchesOnBlankLine(t *testing.T) {
	// Arrange
	input := "event: boardUpdate\ndata: {\"title\":\"retro\"}\n\n" +
		"event: boardUpdate\ndata: null\n\n"

	var events []streamEvent

	// Act
	err := readEvents(strings.NewReader(input), func(e streamEvent) error {
		events = append(events, e)
		return nil
	})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "boardUpdate", events[0].name)
	assert.Equal(t, `{"title":"retro"}`, events[0].data)
	assert.Equal(t, "null", events[1].data)
}

func TestReadEvents_MultiLineData(t *testing.T) {
	// Arrange
	input := "event: boardUpdate\ndata: line one\ndata: line two\n\n"

	var events []streamEvent

	// Act
	err := readEvents(strings.NewReader(input), func(e streamEvent) error {
		events = append(events, e)
		return nil
	})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "line one\nline two", events[0].data)
}

func TestReadEvents_SkipsComments(t *testing.T) {
	// Arrange
	input := ": keep-alive\n\nevent: boardUpdate\ndata: null\n\n"

	var events []streamEvent

	// Act
	err := readEvents(strings.NewReader(input), func(e streamEvent) error {
		events = append(events, e)
		return nil
	})

	// Assert: комментарии и пустые эвенты не доставляются
	assert.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestReadEvents_CallbackErrorStopsStream(t *testing.T) {
	// Arrange
	input := "event: boardUpdate\ndata: null\n\nevent: boardUpdate\ndata: null\n\n"
	wantErr := errors.New("stop")
	count := 0

	// Act
	err := readEvents(strings.NewReader(input), func(streamEvent) error {
		count++
		return wantErr
	})

	// Assert
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, count)
}
