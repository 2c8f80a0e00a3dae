//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.sloth -o build/android/sloth.aar ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Sloth.xcframework ./mobile
package mobile

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/sloth/data"
	"github.com/decker502/sloth/pkg/app"
	"github.com/decker502/sloth/pkg/embedded"
)

func init() {
	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
