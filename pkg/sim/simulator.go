// Package sim 提供无窗口的老虎机模拟器
//
// 模拟器以固定 dt 驱动 ReelSetSystem，按脚本发出旋转和强制停止，
// 同一种子和同一脚本总是得到相同的结果。RunBatch 在 ants 协程池上
// 并发运行多台互不共享状态的机器，并汇总命中率与匹配数分布。
package sim

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/game"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/systems"
	"github.com/decker502/sloth/pkg/types"
)

// 默认参数
const (
	DefaultDT              = 1.0 / config.GameTPS
	DefaultMaxTicksPerSpin = 100000
)

var (
	// ErrInvalidOptions 模拟参数无效
	ErrInvalidOptions = errors.New("invalid simulation options")

	// ErrSpinStalled 单次旋转超过 MaxTicksPerSpin 仍未停下
	ErrSpinStalled = errors.New("spin did not settle")

	// ErrSpinRefused 转轮组拒绝开始旋转
	ErrSpinRefused = errors.New("spin refused")
)

// Options 模拟参数
type Options struct {
	// Spins 每台机器的旋转次数
	Spins int
	// DT 每个 tick 的时长（秒），0 使用 DefaultDT
	DT float64
	// ForceStopAfter 旋转开始后多少秒发出强制停止，<= 0 表示自然停止
	ForceStopAfter float64
	// MaxTicksPerSpin 单次旋转允许的最大 tick 数，0 使用 DefaultMaxTicksPerSpin
	MaxTicksPerSpin int
}

func (o Options) withDefaults() Options {
	if o.DT == 0 {
		o.DT = DefaultDT
	}
	if o.MaxTicksPerSpin == 0 {
		o.MaxTicksPerSpin = DefaultMaxTicksPerSpin
	}
	return o
}

func (o Options) validate() error {
	if o.Spins < 1 {
		return fmt.Errorf("%w: spins must be >= 1, got %d", ErrInvalidOptions, o.Spins)
	}
	if o.DT <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %f", ErrInvalidOptions, o.DT)
	}
	if o.MaxTicksPerSpin < 1 {
		return fmt.Errorf("%w: maxTicksPerSpin must be >= 1, got %d", ErrInvalidOptions, o.MaxTicksPerSpin)
	}
	return nil
}

// Report 单台机器（或汇总）的模拟结果
type Report struct {
	Seed         int64   `json:"seed"`
	Spins        int     `json:"spins"`
	WinningSpins int     `json:"winningSpins"`
	HitFrequency float64 `json:"hitFrequency"`
	ForceStops   int     `json:"forceStops"`
	TotalTicks   int     `json:"totalTicks"`

	// LineHits 中奖线索引 → 中奖次数
	LineHits map[int]int `json:"lineHits"`
	// MatchCounts 匹配数量 → 出现次数（只统计中奖）
	MatchCounts map[int]int `json:"matchCounts"`
	// SymbolWins 锚定符号 → 中奖次数
	SymbolWins map[string]int `json:"symbolWins"`

	// FinalGrid 最后一次停下时的可见网格 [列][行]，汇总报告中为空
	FinalGrid [][]string `json:"finalGrid,omitempty"`
}

func newReport(seed int64) *Report {
	return &Report{
		Seed:        seed,
		LineHits:    make(map[int]int),
		MatchCounts: make(map[int]int),
		SymbolWins:  make(map[string]int),
	}
}

// record 记录一次旋转的评估结果
func (r *Report) record(result systems.WinResult) {
	r.Spins++
	if !result.HasWin() {
		return
	}
	r.WinningSpins++
	for line, count := range result.Wins {
		r.LineHits[line]++
		r.MatchCounts[count]++
		r.SymbolWins[string(result.Symbols[line])]++
	}
}

// merge 把另一份报告累加进来
func (r *Report) merge(o *Report) {
	r.Spins += o.Spins
	r.WinningSpins += o.WinningSpins
	r.ForceStops += o.ForceStops
	r.TotalTicks += o.TotalTicks
	for k, v := range o.LineHits {
		r.LineHits[k] += v
	}
	for k, v := range o.MatchCounts {
		r.MatchCounts[k] += v
	}
	for k, v := range o.SymbolWins {
		r.SymbolWins[k] += v
	}
}

func (r *Report) finish() {
	if r.Spins > 0 {
		r.HitFrequency = float64(r.WinningSpins) / float64(r.Spins)
	}
}

// Simulator 无窗口模拟器
// 同一个 Simulator 可以被多个协程同时 Run，每次 Run 使用独立的机器
type Simulator struct {
	cfg    *config.MachineConfig
	opts   Options
	logger *zap.Logger
}

// New 创建模拟器
//
// 参数：
//   - cfg: 机器配置（会被复制）
//   - opts: 模拟参数
//   - l: 日志器，可为 nil
func New(cfg *config.MachineConfig, opts Options, l *zap.Logger) (*Simulator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil machine config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:    cfg.Clone(),
		opts:   opts,
		logger: logger.OrNop(l).Named("sim"),
	}, nil
}

// Options 返回补全默认值后的模拟参数
func (s *Simulator) Options() Options {
	return s.opts
}

// Run 用给定种子运行一台机器
//
// 每次旋转：SpinAll，按固定 dt 推进直到所有转轮静止；
// 设置了 ForceStopAfter 时，旋转开始后到达该时间发出一次强制停止。
// ctx 取消时在下一次旋转开始前返回 ctx.Err()。
func (s *Simulator) Run(ctx context.Context, seed int64) (*Report, error) {
	catalog, err := game.NewSymbolCatalog(types.SymbolsFromStrings(s.cfg.Symbols), seed)
	if err != nil {
		return nil, err
	}

	// 每次旋转的 Info 日志对批量模拟没有意义，转轮组不接日志器
	reelSet, err := systems.NewReelSetSystem(ecs.NewEntityManager(), s.cfg, catalog, nil)
	if err != nil {
		return nil, err
	}

	report := newReport(seed)
	reelSet.AddListener(systems.SpinListenerFuncs{SpinComplete: report.record})

	for spin := 0; spin < s.opts.Spins; spin++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ticks, err := s.spinOnce(reelSet)
		if err != nil {
			return nil, fmt.Errorf("seed %d spin %d: %w", seed, spin, err)
		}
		report.TotalTicks += ticks
	}

	report.ForceStops = reelSet.Stats().ForceStops
	report.FinalGrid = gridNames(reelSet.Grid())
	report.finish()

	s.logger.Debug("[Simulator] run finished",
		zap.Int64("seed", seed),
		zap.Int("spins", report.Spins),
		zap.Float64("hitFrequency", report.HitFrequency))
	return report, nil
}

// spinOnce 执行一次完整旋转，返回消耗的 tick 数
func (s *Simulator) spinOnce(reelSet *systems.ReelSetSystem) (int, error) {
	if !reelSet.SpinAll() {
		return 0, ErrSpinRefused
	}

	elapsed := 0.0
	forced := false
	for tick := 1; tick <= s.opts.MaxTicksPerSpin; tick++ {
		if !forced && s.opts.ForceStopAfter > 0 && elapsed >= s.opts.ForceStopAfter {
			reelSet.ForceStopAll()
			forced = true
		}
		reelSet.Update(s.opts.DT)
		elapsed += s.opts.DT
		if !reelSet.IsAnySpinning() {
			return tick, nil
		}
	}
	return s.opts.MaxTicksPerSpin, fmt.Errorf("%w after %d ticks", ErrSpinStalled, s.opts.MaxTicksPerSpin)
}

func gridNames(grid [][]types.Symbol) [][]string {
	out := make([][]string, len(grid))
	for col, column := range grid {
		out[col] = types.SymbolNames(column)
	}
	return out
}

// SortedKeys 返回 int 键的升序列表，用于稳定输出
func SortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
