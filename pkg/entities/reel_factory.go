package entities

import (
	"fmt"

	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/types"
)

// NewReelEntity 创建转轮实体
//
// 实体包含 ReelComponent（符号槽位 + 运动状态）和 PositionComponent（转轮窗口左上角）。
//
// 参数:
//   - em: 实体管理器
//   - column: 转轮所在列（从左到右）
//   - strip: 初始符号序列，长度必须 >= visibleRows + 1
//   - cfg: 老虎机配置（提供可见行数、运动参数和该列的旋转时长）
//
// 返回:
//   - ecs.EntityID: 创建的转轮实体ID
//   - error: 列号越界或符号序列过短时返回错误
func NewReelEntity(em *ecs.EntityManager, column int, strip []types.Symbol, cfg *config.MachineConfig) (ecs.EntityID, error) {
	if column < 0 || column >= cfg.ReelCount() {
		return 0, fmt.Errorf("reel column %d out of range [0, %d)", column, cfg.ReelCount())
	}
	if len(strip) < cfg.VisibleRows+1 {
		return 0, fmt.Errorf("reel %d strip has %d symbols, need at least %d",
			column, len(strip), cfg.VisibleRows+1)
	}

	motion := cfg.Motion()
	reel := components.NewReelComponent(column, strip, cfg.VisibleRows, motion.Pitch(), cfg.SpinDurations[column])

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, reel)
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: config.ReelScreenX(column),
		Y: config.ReelOriginY,
	})

	return entityID, nil
}
