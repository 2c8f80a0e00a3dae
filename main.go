package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sloth/data"
	"github.com/decker502/sloth/pkg/app"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/embedded"
)

var (
	configPath = flag.String("config", "", "机器配置文件路径（默认使用内置 data/sloth.yaml）")
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置文件中的种子或当前时间）")
	imagesDir  = flag.String("images", "", "符号图片目录，目录中的 png 文件名即符号名")
	logFile    = flag.Bool("log-file", false, "同时写入滚动日志文件")
	logDir     = flag.String("log-dir", "logs", "日志文件目录")
)

func main() {
	flag.Parse()

	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		LogFile:    *logFile,
		LogDir:     *logDir,
		ConfigPath: *configPath,
		Seed:       *seed,
		ImagesDir:  *imagesDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Sloth - 老虎机")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.GameTPS)

	if err := runGame(gameApp, gameApp.Close, ebiten.RunGame); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

// runGame 运行游戏循环，返回前总是调用 closeFn
// os.Exit 不执行 defer，所以关闭必须在退出之前完成
func runGame(g ebiten.Game, closeFn func(), run func(ebiten.Game) error) error {
	defer closeFn()
	return run(g)
}
