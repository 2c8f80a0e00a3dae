package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/sloth/pkg/types"
)

// SymbolImageExt 符号图片的扩展名
const SymbolImageExt = ".png"

// LoadSymbolsFromDir 以目录中的 png 文件名作为符号列表
//
// 文件名去掉扩展名即符号名，按名称排序保证结果稳定。
//
// 返回：
//   - []types.Symbol: 符号列表
//   - error: 目录无法读取，或目录中没有 png 文件
func LoadSymbolsFromDir(dir string) ([]types.Symbol, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol directory %s: %w", dir, err)
	}

	var symbols []types.Symbol
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), SymbolImageExt) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "" {
			continue
		}
		symbols = append(symbols, types.Symbol(base))
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrEmptyCatalog, SymbolImageExt, dir)
	}

	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols, nil
}
