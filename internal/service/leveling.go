package service

// XPPerLevel 每 1000 经验升一级
const XPPerLevel = 1000

// LevelForXP 等级从 1 起步，只由累计经验决定
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}
