package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
// 所有校验错误都包装此错误，调用方可通过 errors.Is 判断
var ErrInvalidConfig = errors.New("invalid machine config")

// DefaultMachineConfigPath 默认老虎机配置文件（嵌入资源路径）
const DefaultMachineConfigPath = "data/sloth.yaml"

// MachineConfig 老虎机配置
//
// 描述转轮数量、每个转轮的符号槽位、运动参数以及中奖线。
// 所有时间单位为秒，速度单位为"像素/帧"。
//
// 配置文件位置: data/sloth.yaml
type MachineConfig struct {
	// ReelLength 每个转轮的符号槽位数量（必须 >= VisibleRows + 1，留出循环滚动的余量）
	ReelLength int `yaml:"reelLength"`

	// VisibleRows 每个转轮可见的行数
	VisibleRows int `yaml:"visibleRows"`

	// SpinVelocity 旋转速度（像素/帧，正值表示向下滚动）
	SpinVelocity float64 `yaml:"spinVelocity"`

	// StopDuration 软停止（线性减速）持续时间（秒）
	StopDuration float64 `yaml:"stopDuration"`

	// SnapSpace 回弹对齐的目标偏移量：顶部槽位偏移 <= SnapSpace 即视为对齐
	SnapSpace float64 `yaml:"snapSpace"`

	// SnapVelocity 回弹速度下限（<= 0），回弹速度的绝对值不会超过它
	// 0 表示不限制，回弹速度完全由 SnapEasing 决定
	SnapVelocity float64 `yaml:"snapVelocity"`

	// SnapEasing 回弹缓动除数：每帧速度 = -(剩余距离 / SnapEasing)
	SnapEasing float64 `yaml:"snapEasing"`

	// CellHeight 符号格子高度（像素）
	CellHeight float64 `yaml:"cellHeight"`

	// Spacing 相邻符号之间的垂直间距（像素）
	Spacing float64 `yaml:"spacing"`

	// SpinDurations 每个转轮的旋转时长（秒），长度即转轮数量
	// 依次递增可以得到从左到右逐个停下的效果
	SpinDurations []float64 `yaml:"spinDurations"`

	// WinLines 中奖线，每条线为每列一个可见行索引
	WinLines [][]int `yaml:"winLines"`

	// Symbols 可用符号名称列表
	Symbols []string `yaml:"symbols"`

	// Seed 随机种子，0 表示由调用方决定（演示程序使用当前时间）
	Seed int64 `yaml:"seed"`
}

// ReelMotion 转轮运动参数
// 由 MachineConfig 派生，传给转轮状态机使用
type ReelMotion struct {
	SpinVelocity float64
	StopDuration float64
	SnapSpace    float64
	SnapVelocity float64
	SnapEasing   float64
	CellHeight   float64
	Spacing      float64
}

// Pitch 返回相邻槽位之间的距离（格子高度 + 间距）
func (m ReelMotion) Pitch() float64 {
	return m.CellHeight + m.Spacing
}

// DefaultMachineConfig 返回默认配置（5 轮 3 行，5 条中奖线）
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		ReelLength:    6,
		VisibleRows:   3,
		SpinVelocity:  30,
		StopDuration:  0.2,
		SnapSpace:     15,
		SnapVelocity:  -10,
		SnapEasing:    2,
		CellHeight:    120,
		Spacing:       15,
		SpinDurations: []float64{1.0, 1.25, 1.5, 1.75, 2.0},
		WinLines: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
		},
		Symbols: []string{"cherry", "lemon", "orange", "plum", "grape", "bell", "bar", "seven"},
	}
}

// LoadMachineConfig 加载老虎机配置
//
// 从指定路径读取 YAML 配置，补齐默认值后进行校验。
//
// 参数:
//   - path: 配置文件路径（如 "data/sloth.yaml"）
//
// 返回:
//   - *MachineConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadMachineConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config %s: %w", path, err)
	}

	cfg, err := ParseMachineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("machine config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseMachineConfig 从 YAML 数据解析老虎机配置
func ParseMachineConfig(data []byte) (*MachineConfig, error) {
	var cfg MachineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	applyMachineDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyMachineDefaults 为缺省的可选字段设置默认值
func applyMachineDefaults(cfg *MachineConfig) {
	// 缓动除数未配置时使用 2（每帧走完剩余距离的一半）
	if cfg.SnapEasing == 0 {
		cfg.SnapEasing = 2
	}
}

// Validate 验证配置有效性
//
// 检查内容：
//   - 至少 2 个转轮，且 ReelLength >= VisibleRows + 1
//   - 运动参数的取值范围（单帧最多换行一次，旋转速度必须小于槽位间距）
//   - 中奖线长度等于转轮数量，行索引位于 [0, VisibleRows)
//   - 符号列表非空且无重复
//
// 返回:
//   - error: 校验失败时返回包装了 ErrInvalidConfig 的错误
func (c *MachineConfig) Validate() error {
	if c.VisibleRows < 1 {
		return fmt.Errorf("%w: visibleRows must be >= 1, got %d", ErrInvalidConfig, c.VisibleRows)
	}
	if c.ReelLength < c.VisibleRows+1 {
		return fmt.Errorf("%w: reelLength must be >= visibleRows+1 (%d), got %d",
			ErrInvalidConfig, c.VisibleRows+1, c.ReelLength)
	}
	if len(c.SpinDurations) < 2 {
		return fmt.Errorf("%w: at least 2 reels are required, got %d", ErrInvalidConfig, len(c.SpinDurations))
	}
	for i, d := range c.SpinDurations {
		if d < 0 {
			return fmt.Errorf("%w: spinDurations[%d] must be >= 0, got %.3f", ErrInvalidConfig, i, d)
		}
	}

	if c.CellHeight <= 0 {
		return fmt.Errorf("%w: cellHeight must be > 0, got %.1f", ErrInvalidConfig, c.CellHeight)
	}
	if c.Spacing < 0 {
		return fmt.Errorf("%w: spacing must be >= 0, got %.1f", ErrInvalidConfig, c.Spacing)
	}
	pitch := c.CellHeight + c.Spacing
	if c.SpinVelocity <= 0 || c.SpinVelocity >= pitch {
		return fmt.Errorf("%w: spinVelocity must be in (0, %.1f), got %.1f", ErrInvalidConfig, pitch, c.SpinVelocity)
	}
	if c.StopDuration <= 0 {
		return fmt.Errorf("%w: stopDuration must be > 0, got %.3f", ErrInvalidConfig, c.StopDuration)
	}
	if c.SnapSpace < 0 || c.SnapSpace >= pitch {
		return fmt.Errorf("%w: snapSpace must be in [0, %.1f), got %.1f", ErrInvalidConfig, pitch, c.SnapSpace)
	}
	if c.SnapVelocity > 0 {
		return fmt.Errorf("%w: snapVelocity must be <= 0, got %.1f", ErrInvalidConfig, c.SnapVelocity)
	}
	if c.SnapEasing < 1 {
		return fmt.Errorf("%w: snapEasing must be >= 1, got %.2f", ErrInvalidConfig, c.SnapEasing)
	}

	if len(c.WinLines) == 0 {
		return fmt.Errorf("%w: at least one win line is required", ErrInvalidConfig)
	}
	for i, line := range c.WinLines {
		if len(line) != len(c.SpinDurations) {
			return fmt.Errorf("%w: winLines[%d] has %d rows, want one per reel (%d)",
				ErrInvalidConfig, i, len(line), len(c.SpinDurations))
		}
		for col, row := range line {
			if row < 0 || row >= c.VisibleRows {
				return fmt.Errorf("%w: winLines[%d] column %d: row %d outside [0, %d)",
					ErrInvalidConfig, i, col, row, c.VisibleRows)
			}
		}
	}

	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: symbols cannot be empty", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Symbols))
	for _, s := range c.Symbols {
		if s == "" {
			return fmt.Errorf("%w: symbol name cannot be empty", ErrInvalidConfig)
		}
		if seen[s] {
			return fmt.Errorf("%w: duplicate symbol %q", ErrInvalidConfig, s)
		}
		seen[s] = true
	}

	return nil
}

// ReelCount 返回转轮数量
func (c *MachineConfig) ReelCount() int {
	return len(c.SpinDurations)
}

// Motion 返回转轮运动参数
func (c *MachineConfig) Motion() ReelMotion {
	return ReelMotion{
		SpinVelocity: c.SpinVelocity,
		StopDuration: c.StopDuration,
		SnapSpace:    c.SnapSpace,
		SnapVelocity: c.SnapVelocity,
		SnapEasing:   c.SnapEasing,
		CellHeight:   c.CellHeight,
		Spacing:      c.Spacing,
	}
}

// Clone 返回配置的深拷贝
// 批量模拟时每台机器持有独立副本，避免共享切片
func (c *MachineConfig) Clone() *MachineConfig {
	out := *c
	out.SpinDurations = append([]float64(nil), c.SpinDurations...)
	out.Symbols = append([]string(nil), c.Symbols...)
	out.WinLines = make([][]int, len(c.WinLines))
	for i, line := range c.WinLines {
		out.WinLines[i] = append([]int(nil), line...)
	}
	return &out
}
