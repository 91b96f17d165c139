package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAliasTableDirectMatch(t *testing.T) {
	table := NewAliasTable(nil)

	require.True(t, table.Matches("seller-1", "seller-1"))
	require.False(t, table.Matches("seller-1", "seller-2"))
}

func TestAliasTableLegacyAlias(t *testing.T) {
	table := NewAliasTable(map[string]string{
		"seller-demo-001": "seller-demo-001",
		"legacy-42":       "seller-9",
	})

	// 种子数据的遗留卖家 ID 命中自身
	require.True(t, table.Matches("seller-demo-001", "seller-demo-001"))
	// 别名归属到新身份
	require.True(t, table.Matches("legacy-42", "seller-9"))
	require.False(t, table.Matches("legacy-42", "seller-10"))
}

func TestAliasTableEmptyIdentity(t *testing.T) {
	table := NewAliasTable(map[string]string{"": ""})

	require.False(t, table.Matches("", ""))
	require.False(t, table.Matches("seller-1", ""))
}

func TestMarkReadIdempotent(t *testing.T) {
	n := &Notification{ID: "n-1"}

	require.True(t, n.MarkRead())
	require.False(t, n.MarkRead())
	require.True(t, n.Read)
}
