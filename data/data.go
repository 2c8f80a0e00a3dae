// Package data 嵌入随程序发布的数据文件
//
// 桌面端、移动端和模拟器都通过 embedded.Init(data.FS) 使用同一份嵌入文件。
package data

import "embed"

// FS 嵌入的数据文件，根目录即 data/
//
//go:embed sloth.yaml
var FS embed.FS
