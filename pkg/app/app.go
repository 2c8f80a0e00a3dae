// Package app 提供老虎机演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/game"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/scenes"
	"github.com/decker502/sloth/pkg/systems"
	"github.com/decker502/sloth/pkg/systems/render"
	"github.com/decker502/sloth/pkg/types"
)

// AppName gdata 存储目录名与日志文件名前缀
const AppName = "sloth"

// windowResetDelayFrames 退出全屏后延迟设置窗口大小的帧数
const windowResetDelayFrames = 3

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出（debug 级别）
	Verbose bool
	// LogFile 额外写入滚动日志文件
	LogFile bool
	// LogDir 日志文件目录
	LogDir string
	// ConfigPath 机器配置文件路径，为空时使用嵌入的 data/sloth.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用配置文件中的种子，仍为 0 时使用当前时间
	Seed int64
	// ImagesDir 符号图片目录，非空时以目录中的 png 文件作为符号列表
	ImagesDir string
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	settings     *game.SettingsManager
	reelSet      *systems.ReelSetSystem
	logger       *zap.Logger
	seed         int64

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，应先调用 embedded.Init() 注入嵌入的数据文件。
// 用户设置存储不可用时降级为仅内存设置，不视为错误。
func NewApp(cfg Config) (*App, error) {
	level := "info"
	if cfg.Verbose {
		level = "debug"
	}
	l := logger.New(&logger.Config{
		Level: level,
		App:   AppName,
		Dir:   cfg.LogDir,
		File:  cfg.LogFile,
	})
	log := l.Named("app")

	machineCfg, err := config.ResolveMachineConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	if cfg.ImagesDir != "" {
		symbols, err := game.LoadSymbolsFromDir(cfg.ImagesDir)
		if err != nil {
			return nil, fmt.Errorf("symbol images: %w", err)
		}
		machineCfg.Symbols = types.SymbolNames(symbols)
		if err := machineCfg.Validate(); err != nil {
			return nil, fmt.Errorf("symbol images: %w", err)
		}
	}

	seed := ResolveSeed(cfg.Seed, machineCfg.Seed, time.Now)
	log.Info("[App] machine configured",
		zap.Int("reels", machineCfg.ReelCount()),
		zap.Int("visibleRows", machineCfg.VisibleRows),
		zap.Int("symbols", len(machineCfg.Symbols)),
		zap.Int64("seed", seed))

	catalog, err := game.NewSymbolCatalog(types.SymbolsFromStrings(machineCfg.Symbols), seed)
	if err != nil {
		return nil, fmt.Errorf("symbol catalog: %w", err)
	}

	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warn("[App] persistent storage unavailable, settings are kept in memory", zap.Error(err))
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager, l)

	em := ecs.NewEntityManager()
	reelSet, err := systems.NewReelSetSystem(em, machineCfg, catalog, l)
	if err != nil {
		return nil, fmt.Errorf("reel set: %w", err)
	}

	resources := render.NewResourceManager(l)
	resources.LoadSymbolImages(cfg.ImagesDir, catalog.Symbols())
	reelRender := render.NewReelRenderSystem(em, resources, reelSet.Motion(), reelSet.VisibleRows())

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewSlotScene(reelSet, reelRender, settings, l))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		reelSet:      reelSet,
		logger:       log,
		seed:         seed,
	}, nil
}

// ResolveSeed 决定随机种子：命令行 > 配置文件 > 当前时间
func ResolveSeed(flagSeed, configSeed int64, now func() time.Time) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if configSeed != 0 {
		return configSeed
	}
	return now().UnixNano()
}

// Update 更新演示程序逻辑
// 每个 tick 调用一次，dt 固定为 1/GameTPS 秒
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.logger.Debug("[App] delayed SetWindowSize",
				zap.Int("width", config.GameWindowWidth), zap.Int("height", config.GameWindowHeight))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / config.GameTPS)
	return nil
}

// toggleFullscreen 切换全屏并保存设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = windowResetDelayFrames
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}

	if err := a.settings.Save(); err != nil {
		a.logger.Warn("[App] failed to save fullscreen setting", zap.Error(err))
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 保存当前场景状态并刷新日志
// 窗口关闭时调用
func (a *App) Close() {
	if !a.sceneManager.SaveOnExit() {
		a.logger.Warn("[App] scene state was not saved on exit")
	}
	a.logger.Info("[App] shutting down", zap.Any("stats", a.reelSet.Stats()))
	_ = a.logger.Sync()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// ReelSet 返回转轮组
func (a *App) ReelSet() *systems.ReelSetSystem {
	return a.reelSet
}

// Seed 返回本次运行使用的随机种子
func (a *App) Seed() int64 {
	return a.seed
}
