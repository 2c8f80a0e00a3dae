package systems

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/entities"
	"github.com/decker502/sloth/pkg/game"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/types"
)

var (
	// ErrEvaluateWhileSpinning 在仍有转轮转动时请求评估
	ErrEvaluateWhileSpinning = errors.New("evaluate requested while reels are moving")

	// ErrColumnOutOfRange 访问的列超出转轮数量
	ErrColumnOutOfRange = errors.New("column out of range")
)

// SpinListener 转轮组事件监听器
//
// 回调在 Update 内同步触发，监听器不应在回调中再次调用 Update
type SpinListener interface {
	// OnReelStopped 某个转轮从回弹阶段回到静止
	OnReelStopped(column int)
	// OnSpinComplete 所有转轮静止且评估完成
	OnSpinComplete(result WinResult)
}

// SpinListenerFuncs 用函数实现 SpinListener，未设置的回调被忽略
type SpinListenerFuncs struct {
	ReelStopped  func(column int)
	SpinComplete func(result WinResult)
}

// OnReelStopped 实现 SpinListener
func (f SpinListenerFuncs) OnReelStopped(column int) {
	if f.ReelStopped != nil {
		f.ReelStopped(column)
	}
}

// OnSpinComplete 实现 SpinListener
func (f SpinListenerFuncs) OnSpinComplete(result WinResult) {
	if f.SpinComplete != nil {
		f.SpinComplete(result)
	}
}

// ReelSetStats 转轮组运行统计（仅内存）
type ReelSetStats struct {
	SpinsStarted   int // 成功发起的旋转次数
	SpinsCompleted int // 完成评估的旋转次数
	ForceStops     int // 生效的强制停止次数
	WinningSpins   int // 至少一条中奖线的旋转次数
}

// ReelSetSystem 转轮组协调系统
//
// 职责：
//   - 统一发起旋转（SpinAll），按每个转轮的旋转时长依次发起软停止
//   - 每帧推进所有转轮状态机
//   - 检测"全部静止"并且每次旋转只评估一次
//   - 对外提供网格访问、中奖结果和事件监听
//
// 单线程、帧驱动：所有方法都应在同一个 goroutine 中调用。
type ReelSetSystem struct {
	entityManager *ecs.EntityManager
	config        *config.MachineConfig
	motion        config.ReelMotion
	evaluator     *WinEvaluator
	logger        *zap.Logger

	// reelIDs 按列顺序保存的转轮实体
	reelIDs []ecs.EntityID

	listeners []SpinListener

	// awaitingEvaluation 本次旋转尚未评估（SpinAll 置位，评估时清除）
	awaitingEvaluation bool
	isEvaluating       bool
	isPresentingResult bool

	lastResult   WinResult
	winningLines map[int]int
	stats        ReelSetStats
}

// NewReelSetSystem 创建转轮组系统
//
// 先校验配置，再为每一列创建转轮实体，初始符号序列从目录中随机生成。
// 任何一步失败都不会留下部分创建的转轮。
//
// 参数：
//   - em: 实体管理器
//   - cfg: 老虎机配置（系统持有其副本）
//   - catalog: 符号目录
//   - l: 日志器，nil 表示不输出日志
//
// 返回：
//   - *ReelSetSystem: 系统实例
//   - error: 配置无效（包装 config.ErrInvalidConfig）或目录为空
func NewReelSetSystem(em *ecs.EntityManager, cfg *config.MachineConfig, catalog *game.SymbolCatalog, l *zap.Logger) (*ReelSetSystem, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil machine config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, game.ErrEmptyCatalog
	}

	cfg = cfg.Clone()
	s := &ReelSetSystem{
		entityManager: em,
		config:        cfg,
		motion:        cfg.Motion(),
		evaluator:     NewWinEvaluator(types.WinLinesFromRows(cfg.WinLines)),
		logger:        logger.OrNop(l).Named("reelset"),
		reelIDs:       make([]ecs.EntityID, 0, cfg.ReelCount()),
		winningLines:  make(map[int]int),
	}

	for col := 0; col < cfg.ReelCount(); col++ {
		id, err := entities.NewReelEntity(em, col, catalog.Strip(cfg.ReelLength), cfg)
		if err != nil {
			for _, created := range s.reelIDs {
				em.DestroyEntity(created)
			}
			em.RemoveMarkedEntities()
			return nil, fmt.Errorf("failed to create reel %d: %w", col, err)
		}
		s.reelIDs = append(s.reelIDs, id)
	}

	s.logger.Info("[ReelSet] created",
		zap.Int("reels", cfg.ReelCount()),
		zap.Int("reelLength", cfg.ReelLength),
		zap.Int("visibleRows", cfg.VisibleRows),
		zap.Int("winLines", len(cfg.WinLines)),
		zap.Int64("seed", catalog.Seed()))

	return s, nil
}

// AddListener 注册事件监听器
func (s *ReelSetSystem) AddListener(l SpinListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// SpinAll 所有转轮开始旋转
//
// 任一转轮仍在转动时拒绝（返回 false），不影响正在进行的旋转。
// 成功时清除上一次的评估结果。
func (s *ReelSetSystem) SpinAll() bool {
	if s.IsAnySpinning() {
		s.logger.Debug("[ReelSet] spin refused, reels still moving")
		return false
	}

	s.isEvaluating = false
	s.isPresentingResult = false
	s.lastResult = WinResult{}
	s.winningLines = make(map[int]int)
	s.awaitingEvaluation = true

	for _, reel := range s.Reels() {
		SpinReel(reel, s.motion)
	}
	s.stats.SpinsStarted++

	s.logger.Debug("[ReelSet] spin started", zap.Int("spin", s.stats.SpinsStarted))
	return true
}

// ForceStopAll 强制停止所有转动中的转轮（跳过动画）
//
// 在本次调用内生效：转轮直接进入回弹阶段
//
// 返回：
//   - int: 受影响的转轮数量
func (s *ReelSetSystem) ForceStopAll() int {
	stopped := 0
	for _, reel := range s.Reels() {
		if ForceStopReel(reel) {
			stopped++
		}
	}
	if stopped > 0 {
		s.stats.ForceStops++
		s.logger.Debug("[ReelSet] force stop", zap.Int("reels", stopped))
	}
	return stopped
}

// Update 推进一帧
//
// 执行顺序：
//  1. 旋转时长到达的转轮发起软停止
//  2. 推进每个转轮的状态机，转轮停下时通知监听器
//  3. 全部静止且本次旋转尚未评估时，执行一次评估
//
// 参数：
//   - dt: 帧间隔（秒），负值被忽略
func (s *ReelSetSystem) Update(dt float64) {
	if dt < 0 {
		s.logger.Debug("[ReelSet] ignoring negative dt", zap.Float64("dt", dt))
		return
	}

	for _, reel := range s.Reels() {
		if reel.State == components.MotionSpinning && reel.SpinElapsed >= reel.SpinDuration {
			StopReel(reel)
		}
		if UpdateReel(reel, dt, s.motion) {
			s.logger.Debug("[ReelSet] reel stopped", zap.Int("column", reel.Column))
			for _, l := range s.listeners {
				l.OnReelStopped(reel.Column)
			}
		}
	}

	if s.awaitingEvaluation && !s.IsAnySpinning() {
		s.awaitingEvaluation = false
		s.finishSpin()
	}
}

// finishSpin 评估阶段：所有转轮静止后调用一次
func (s *ReelSetSystem) finishSpin() {
	s.isEvaluating = true

	result, err := s.Evaluate()
	if err != nil {
		s.logger.Error("[ReelSet] evaluation failed", zap.Error(err))
		return
	}

	s.lastResult = result
	s.winningLines = result.Wins
	s.isPresentingResult = result.HasWin()
	s.stats.SpinsCompleted++
	if result.HasWin() {
		s.stats.WinningSpins++
	}

	s.logger.Info("[ReelSet] spin complete",
		zap.Int("spin", s.stats.SpinsCompleted),
		zap.Any("wins", result.Wins))

	for _, l := range s.listeners {
		l.OnSpinComplete(result)
	}
}

// Evaluate 评估当前网格
//
// 任一转轮不是 Idle 时返回 ErrEvaluateWhileSpinning，不会读取转动中的网格
func (s *ReelSetSystem) Evaluate() (WinResult, error) {
	for _, reel := range s.Reels() {
		if !reel.IsIdle() {
			return WinResult{}, fmt.Errorf("%w: reel %d is %s", ErrEvaluateWhileSpinning, reel.Column, reel.State)
		}
	}
	return s.evaluator.Evaluate(s)
}

// IsAnySpinning 是否有任一转轮处于转动状态（包括软停止和回弹）
func (s *ReelSetSystem) IsAnySpinning() bool {
	for _, reel := range s.Reels() {
		if reel.IsMoving() {
			return true
		}
	}
	return false
}

// IsEvaluating 本次旋转是否已进入评估阶段（直到下一次 SpinAll）
func (s *ReelSetSystem) IsEvaluating() bool {
	return s.isEvaluating
}

// IsPresentingResult 本次旋转是否有中奖结果需要展示
func (s *ReelSetSystem) IsPresentingResult() bool {
	return s.isPresentingResult
}

// WinningLines 返回中奖线索引 → 匹配数量的副本
func (s *ReelSetSystem) WinningLines() map[int]int {
	out := make(map[int]int, len(s.winningLines))
	for k, v := range s.winningLines {
		out[k] = v
	}
	return out
}

// LastResult 返回最近一次评估结果
func (s *ReelSetSystem) LastResult() WinResult {
	return s.lastResult
}

// WinningCells 返回当前中奖结果需要高亮的单元格
func (s *ReelSetSystem) WinningCells() []GridCell {
	return s.evaluator.WinningCells(s.winningLines)
}

// Stats 返回运行统计
func (s *ReelSetSystem) Stats() ReelSetStats {
	return s.stats
}

// Motion 返回运动参数
func (s *ReelSetSystem) Motion() config.ReelMotion {
	return s.motion
}

// VisibleRows 返回可见行数
func (s *ReelSetSystem) VisibleRows() int {
	return s.config.VisibleRows
}

// WinLines 返回中奖线数量
func (s *ReelSetSystem) WinLines() int {
	return s.evaluator.Lines()
}

// Columns 返回转轮数量（实现 Grid）
func (s *ReelSetSystem) Columns() int {
	return len(s.reelIDs)
}

// SymbolAt 返回指定列、可见行上的符号（实现 Grid）
func (s *ReelSetSystem) SymbolAt(column, row int) (types.Symbol, error) {
	reel, err := s.reel(column)
	if err != nil {
		return types.NoSymbol, err
	}
	return reel.SymbolAt(row)
}

// Grid 返回可见区域快照，按 [列][行] 排列
func (s *ReelSetSystem) Grid() [][]types.Symbol {
	reels := s.Reels()
	out := make([][]types.Symbol, len(reels))
	for i, reel := range reels {
		out[i] = reel.VisibleSymbols()
	}
	return out
}

// Reels 按列顺序返回转轮组件（供渲染和测试使用）
func (s *ReelSetSystem) Reels() []*components.ReelComponent {
	reels := make([]*components.ReelComponent, 0, len(s.reelIDs))
	for _, id := range s.reelIDs {
		if reel, ok := ecs.GetComponent[*components.ReelComponent](s.entityManager, id); ok {
			reels = append(reels, reel)
		}
	}
	return reels
}

// ReelEntities 按列顺序返回转轮实体ID
func (s *ReelSetSystem) ReelEntities() []ecs.EntityID {
	return append([]ecs.EntityID(nil), s.reelIDs...)
}

func (s *ReelSetSystem) reel(column int) (*components.ReelComponent, error) {
	if column < 0 || column >= len(s.reelIDs) {
		return nil, fmt.Errorf("%w: column %d (reels %d)", ErrColumnOutOfRange, column, len(s.reelIDs))
	}
	reel, ok := ecs.GetComponent[*components.ReelComponent](s.entityManager, s.reelIDs[column])
	if !ok {
		return nil, fmt.Errorf("reel entity %d for column %d has no ReelComponent", s.reelIDs[column], column)
	}
	return reel, nil
}
