//go:build !mobile

// Package mobile 的桌面端占位
//
// 绑定代码在 mobile.go 中，只在 -tags mobile 时编译；
// 保留此文件让 go build ./... 在桌面端也能通过。
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
