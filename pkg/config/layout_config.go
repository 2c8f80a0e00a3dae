package config

// 布局配置常量
// 本文件定义了演示程序的屏幕布局参数，包括转轮位置、格子宽度等
// 转轮内部的纵向尺寸（格子高度、间距）来自 MachineConfig

// Screen Configuration (屏幕配置)
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// GameTPS 每秒逻辑帧数，dt = 1 / GameTPS
	GameTPS = 60
)

// Reel Layout Configuration (转轮布局配置)
const (
	// ReelOriginX 第一个转轮左上角的屏幕X坐标
	ReelOriginX = 50.0

	// ReelOriginY 转轮窗口顶部的屏幕Y坐标
	ReelOriginY = 50.0

	// ReelCellWidth 每个符号格子的宽度（像素）
	ReelCellWidth = 120.0

	// ReelGap 相邻转轮之间的水平间距（像素）
	ReelGap = 15.0
)

// ReelScreenX 返回指定列转轮的屏幕X坐标
func ReelScreenX(column int) float64 {
	return ReelOriginX + float64(column)*(ReelCellWidth+ReelGap)
}

// ReelWindowHeight 返回转轮可见窗口的高度
//
// 参数：
//   - visibleRows: 可见行数
//   - motion: 转轮运动参数（提供格子高度和间距）
func ReelWindowHeight(visibleRows int, motion ReelMotion) float64 {
	return float64(visibleRows)*motion.Pitch() + motion.Spacing
}

// CellScreenRect 返回网格单元（列、行）在屏幕上的矩形区域
// 用于中奖线高亮：静止状态下第 row 行对应槽位 row
//
// 返回值：x, y, width, height
func CellScreenRect(column, row int, topOffset float64, motion ReelMotion) (float64, float64, float64, float64) {
	x := ReelScreenX(column)
	y := ReelOriginY + topOffset + float64(row)*motion.Pitch()
	return x, y, ReelCellWidth, motion.CellHeight
}
