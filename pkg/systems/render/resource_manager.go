package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/sloth/pkg/game"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/types"
)

// ResourceManager is responsible for loading and caching demo images.
// Symbol images are looked up by symbol name: <dir>/<symbol>.png.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The caches use plain Go maps and
// are only touched from the ebiten game loop.
type ResourceManager struct {
	imageCache   map[string]*ebiten.Image       // path -> Image
	symbolImages map[types.Symbol]*ebiten.Image // symbol -> Image
	logger       *zap.Logger
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager(l *zap.Logger) *ResourceManager {
	return &ResourceManager{
		imageCache:   make(map[string]*ebiten.Image),
		symbolImages: make(map[types.Symbol]*ebiten.Image),
		logger:       logger.OrNop(l).Named("resources"),
	}
}

// LoadImage loads an image file from the specified path and caches it.
// If the image has already been loaded, it returns the cached version.
//
// Returns an error if the file cannot be opened or decoded; never panics.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage 返回已缓存的图片，未加载时返回 nil
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadSymbolImages 加载符号图片
//
// 每个符号对应 dir 下的 <symbol>.png，缺失或损坏的图片只记录警告，
// 渲染时回退为纯色格子。
//
// 参数：
//   - dir: 图片目录，为空时不加载任何图片
//   - symbols: 需要加载的符号
//
// 返回：
//   - int: 成功加载的数量
func (rm *ResourceManager) LoadSymbolImages(dir string, symbols []types.Symbol) int {
	if dir == "" {
		return 0
	}

	loaded := 0
	for _, sym := range symbols {
		path := filepath.Join(dir, string(sym)+game.SymbolImageExt)
		img, err := rm.LoadImage(path)
		if err != nil {
			rm.logger.Warn("[ResourceManager] symbol image unavailable, using fallback tile",
				zap.String("symbol", string(sym)), zap.Error(err))
			continue
		}
		rm.symbolImages[sym] = img
		loaded++
	}

	rm.logger.Info("[ResourceManager] symbol images loaded",
		zap.String("dir", dir), zap.Int("loaded", loaded), zap.Int("symbols", len(symbols)))
	return loaded
}

// SymbolImage 返回符号图片，没有时返回 nil
func (rm *ResourceManager) SymbolImage(sym types.Symbol) *ebiten.Image {
	return rm.symbolImages[sym]
}
