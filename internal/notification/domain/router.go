package domain

// AliasTable 卖家身份别名表，启动时由配置解析
// 键为别名（如早期种子数据沿用的卖家 ID），值为该别名归属的会话身份
type AliasTable struct {
	aliases map[string]string
}

// NewAliasTable 从配置构建别名表
func NewAliasTable(aliases map[string]string) *AliasTable {
	table := make(map[string]string, len(aliases))
	for alias, owner := range aliases {
		table[alias] = owner
	}
	return &AliasTable{aliases: table}
}

// Matches 判断通知的目标卖家是否命中当前会话身份
// 直接相等命中；否则目标是别名且其归属身份等于当前会话时命中
func (t *AliasTable) Matches(targetSellerID, currentUserID string) bool {
	if targetSellerID == "" || currentUserID == "" {
		return false
	}
	if targetSellerID == currentUserID {
		return true
	}
	owner, ok := t.aliases[targetSellerID]
	return ok && owner == currentUserID
}
