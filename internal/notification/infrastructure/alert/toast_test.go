package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToastBoardExpiresAfterTTL(t *testing.T) {
	board := NewToastBoard(8 * time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return base }

	board.Push("t-1", "New Order #89AB", "You have a new order")
	require.Len(t, board.Active(), 1)

	// 8 秒后自动消失
	board.now = func() time.Time { return base.Add(8001 * time.Millisecond) }
	require.Empty(t, board.Active())
}

func TestToastBoardKeepsUnexpired(t *testing.T) {
	board := NewToastBoard(8 * time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return base }
	board.Push("t-1", "first", "m")

	board.now = func() time.Time { return base.Add(5 * time.Second) }
	board.Push("t-2", "second", "m")

	board.now = func() time.Time { return base.Add(9 * time.Second) }
	active := board.Active()
	require.Len(t, active, 1)
	require.Equal(t, "t-2", active[0].ID)
}
