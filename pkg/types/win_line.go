package types

import (
	"strconv"
	"strings"
)

// WinLine 一条中奖线（payline）
// 每列一个可见行索引，从左到右排列，长度等于转轮数量
type WinLine []int

// Len 返回中奖线覆盖的列数
func (l WinLine) Len() int {
	return len(l)
}

// Row 返回指定列需要采样的行
func (l WinLine) Row(column int) int {
	return l[column]
}

// String 返回形如 "[0 1 2 1 0]" 的表示
func (l WinLine) String() string {
	parts := make([]string, len(l))
	for i, row := range l {
		parts[i] = strconv.Itoa(row)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// WinLinesFromRows 将配置中的行索引二维表转换为中奖线列表
func WinLinesFromRows(rows [][]int) []WinLine {
	lines := make([]WinLine, len(rows))
	for i, r := range rows {
		line := make(WinLine, len(r))
		copy(line, r)
		lines[i] = line
	}
	return lines
}
