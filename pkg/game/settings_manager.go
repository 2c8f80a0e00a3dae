package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/sloth/pkg/logger"
)

// MachineSettings 演示程序的用户设置
// 只保存显示与操作偏好，不保存任何旋转记录
type MachineSettings struct {
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`

	// QuickStop 快速停止：每次旋转开始后立即强制停止，跳过旋转动画
	QuickStop bool `yaml:"quickStop"`

	// ShowGrid 是否在屏幕下方显示网格文本（调试用）
	ShowGrid bool `yaml:"showGrid"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *MachineSettings {
	return &MachineSettings{
		Fullscreen: false,
		QuickStop:  false,
		ShowGrid:   false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *MachineSettings // 当前设置
	logger       *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "machine"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - l: 日志器，可为 nil
//
// 返回：
//   - *SettingsManager: 设置管理器实例（加载失败时使用默认设置）
func NewSettingsManager(gdataManager *gdata.Manager, l *zap.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logger.OrNop(l).Named("settings"),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		sm.logger.Warn("[SettingsManager] failed to load settings, using defaults", zap.Error(err))
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或设置不存在时使用默认设置
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（此时设置已重置为默认值）
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	sm.logger.Debug("[SettingsManager] settings loaded",
		zap.Bool("fullscreen", loaded.Fullscreen),
		zap.Bool("quickStop", loaded.QuickStop))
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("[SettingsManager] settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *MachineSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetQuickStop 设置快速停止
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetQuickStop(enabled bool) {
	sm.settings.QuickStop = enabled
}

// ToggleQuickStop 切换快速停止并返回新值
func (sm *SettingsManager) ToggleQuickStop() bool {
	sm.settings.QuickStop = !sm.settings.QuickStop
	return sm.settings.QuickStop
}

// ToggleShowGrid 切换网格文本显示并返回新值
func (sm *SettingsManager) ToggleShowGrid() bool {
	sm.settings.ShowGrid = !sm.settings.ShowGrid
	return sm.settings.ShowGrid
}
