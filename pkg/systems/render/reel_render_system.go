// Package render 渲染转轮并管理符号图片
//
// 与转轮引擎分开：引擎包不依赖 ebiten，无窗口的模拟器可以单独构建。
package render

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/systems"
	"github.com/decker502/sloth/pkg/types"
	"github.com/decker502/sloth/pkg/utils"
)

// 渲染颜色
var (
	reelWindowColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	highlightColor  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

// 中奖高亮脉冲
const (
	highlightPulsePeriod = 0.8 // 秒
	highlightMinAlpha    = 0.25
	highlightMaxAlpha    = 0.6
)

// 回退格子上符号名的文字偏移
const (
	labelOffsetX = 6
	labelOffsetY = 6
)

// symbolPalette 没有图片时的回退颜色
var symbolPalette = []color.RGBA{
	{R: 200, G: 40, B: 40, A: 255},
	{R: 230, G: 200, B: 40, A: 255},
	{R: 240, G: 130, B: 30, A: 255},
	{R: 130, G: 50, B: 150, A: 255},
	{R: 70, G: 150, B: 60, A: 255},
	{R: 40, G: 110, B: 200, A: 255},
	{R: 90, G: 90, B: 90, A: 255},
	{R: 200, G: 60, B: 140, A: 255},
}

// ReelRenderSystem 转轮渲染系统
//
// 职责：
//   - 渲染每个转轮的可见窗口（超出窗口的槽位被裁剪）
//   - 有图片的符号按格子尺寸缩放绘制，没有图片时绘制纯色格子和符号名
//   - 高亮中奖单元格
type ReelRenderSystem struct {
	entityManager *ecs.EntityManager
	resources     *ResourceManager
	motion        config.ReelMotion
	visibleRows   int

	// pixel 1x1 白色图片，缩放后用于绘制纯色矩形
	pixel *ebiten.Image

	// highlightTime 高亮脉冲计时（秒）
	highlightTime float64
}

// NewReelRenderSystem 创建转轮渲染系统
//
// 参数：
//   - em: 实体管理器
//   - rm: 资源管理器，可为 nil（全部使用纯色格子）
//   - motion: 运动参数（格子高度和间距）
//   - visibleRows: 可见行数
func NewReelRenderSystem(em *ecs.EntityManager, rm *ResourceManager, motion config.ReelMotion, visibleRows int) *ReelRenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &ReelRenderSystem{
		entityManager: em,
		resources:     rm,
		motion:        motion,
		visibleRows:   visibleRows,
		pixel:         pixel,
	}
}

// Update 推进高亮脉冲计时
func (s *ReelRenderSystem) Update(dt float64) {
	if dt > 0 {
		s.highlightTime += dt
	}
}

// ResetHighlight 重置高亮脉冲，新结果从最暗开始
func (s *ReelRenderSystem) ResetHighlight() {
	s.highlightTime = 0
}

// HighlightAlpha 当前高亮透明度（0~1）
func (s *ReelRenderSystem) HighlightAlpha() float64 {
	return utils.Lerp(highlightMinAlpha, highlightMaxAlpha, utils.Pulse(s.highlightTime, highlightPulsePeriod))
}

// Draw 渲染所有转轮及中奖高亮
// 查询所有拥有 ReelComponent 和 PositionComponent 的实体
func (s *ReelRenderSystem) Draw(screen *ebiten.Image, highlights []systems.GridCell) {
	entities := ecs.GetEntitiesWith2[*components.ReelComponent, *components.PositionComponent](s.entityManager)

	tops := make(map[int]float64, len(entities))
	for _, id := range entities {
		reel, _ := ecs.GetComponent[*components.ReelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.drawReel(screen, reel, pos)
		tops[reel.Column] = reel.TopOffset()
	}

	alpha := float32(s.HighlightAlpha())
	for _, cell := range highlights {
		top, ok := tops[cell.Column]
		if !ok {
			continue
		}
		x, y, w, h := config.CellScreenRect(cell.Column, cell.Row, top, s.motion)
		s.fillRectAlpha(screen, x, y, w, h, highlightColor, alpha)
	}
}

// drawReel 渲染单个转轮
func (s *ReelRenderSystem) drawReel(screen *ebiten.Image, reel *components.ReelComponent, pos *components.PositionComponent) {
	windowH := config.ReelWindowHeight(s.visibleRows, s.motion)
	s.fillRect(screen, pos.X, pos.Y, config.ReelCellWidth, windowH, reelWindowColor)

	clip := image.Rect(int(pos.X), int(pos.Y), int(pos.X+config.ReelCellWidth), int(pos.Y+windowH))
	window, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}

	for _, slot := range reel.Slots {
		y := pos.Y + slot.OffsetY
		if y+s.motion.CellHeight < pos.Y || y > pos.Y+windowH {
			continue
		}
		s.drawSymbol(window, slot.Symbol, pos.X, y)
	}
}

// drawSymbol 在 (x, y) 绘制一个符号格子
func (s *ReelRenderSystem) drawSymbol(dst *ebiten.Image, sym types.Symbol, x, y float64) {
	if s.resources != nil {
		if img := s.resources.SymbolImage(sym); img != nil {
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(config.ReelCellWidth/float64(b.Dx()), s.motion.CellHeight/float64(b.Dy()))
			op.GeoM.Translate(x, y)
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, op)
			return
		}
	}

	s.fillRect(dst, x, y, config.ReelCellWidth, s.motion.CellHeight, SymbolColor(sym))
	ebitenutil.DebugPrintAt(dst, string(sym), int(x)+labelOffsetX, int(y)+labelOffsetY)
}

// fillRect 用 1x1 像素图片绘制纯色矩形
func (s *ReelRenderSystem) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	s.fillRectAlpha(dst, x, y, w, h, c, 1)
}

func (s *ReelRenderSystem) fillRectAlpha(dst *ebiten.Image, x, y, w, h float64, c color.Color, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(s.pixel, op)
}

// SymbolColor 返回符号的回退颜色（同名符号颜色固定）
func SymbolColor(sym types.Symbol) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sym))
	return symbolPalette[h.Sum32()%uint32(len(symbolPalette))]
}
