package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBuffer_AppendEvictsOldest(t *testing.T) {
	buf := NewBuffer(3)
	for i := 0; i < 5; i++ {
		buf.Append(Entry{Message: fmt.Sprintf("entry %d", i)})
	}

	entries := buf.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "entry 2", entries[0].Message)
	assert.Equal(t, "entry 4", entries[2].Message)
}

func TestBuffer_DefaultSize(t *testing.T) {
	buf := NewBuffer(0)
	for i := 0; i < DefaultBufferSize+10; i++ {
		buf.Append(Entry{Message: fmt.Sprintf("entry %d", i)})
	}
	assert.Equal(t, DefaultBufferSize, buf.Len())
}

func TestBuffer_Clear(t *testing.T) {
	buf := NewBuffer(10)
	buf.Append(Entry{Message: "entry"})
	buf.Clear()
	assert.Zero(t, buf.Len())
	assert.Empty(t, buf.Entries())
}

func TestBuffer_EntriesReturnsCopy(t *testing.T) {
	buf := NewBuffer(10)
	buf.Append(Entry{Message: "original"})

	entries := buf.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "original", buf.Entries()[0].Message)
}

func TestNew_CapturesEntriesIntoBuffer(t *testing.T) {
	buf := NewBuffer(10)
	logger := New("info", buf)

	logger.Info("batch started", zap.Int("profiles", 3))
	logger.Debug("below level, not captured")
	logger.Warn("inference call failed")

	entries := buf.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "batch started", entries[0].Message)
	assert.Contains(t, entries[0].Fields, `"profiles":3`)
	assert.Equal(t, "warn", entries[1].Level)
	assert.Empty(t, entries[1].Fields)
}

func TestNew_WithFieldsPropagate(t *testing.T) {
	buf := NewBuffer(10)
	logger := New("info", buf).With(zap.String("component", "scanner"))

	logger.Info("scan complete")

	entries := buf.Entries()
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Fields, `"component":"scanner"`)
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	buf := NewBuffer(10)
	logger := New("nonsense", buf)

	logger.Debug("not captured")
	logger.Info("captured")

	assert.Equal(t, 1, buf.Len())
}
