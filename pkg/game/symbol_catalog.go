package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/decker502/sloth/pkg/types"
)

// ErrEmptyCatalog 符号目录为空
var ErrEmptyCatalog = errors.New("symbol catalog is empty")

// SymbolCatalog 符号目录
//
// 启动时加载一次的不可变符号列表，提供可复现的随机抽取。
// 相同种子 + 相同调用序列得到相同结果。
//
// Thread Safety Note:
// 内部的 *rand.Rand 不是并发安全的。批量模拟时每台机器各自持有一个目录实例。
type SymbolCatalog struct {
	symbols []types.Symbol
	index   map[types.Symbol]int
	rng     *rand.Rand
	seed    int64
}

// NewSymbolCatalog 创建符号目录
//
// 参数：
//   - symbols: 可用符号列表（不能为空，不能重复）
//   - seed: 随机种子
//
// 返回：
//   - *SymbolCatalog: 目录实例（持有 symbols 的副本）
//   - error: 列表为空或有重复时返回错误
func NewSymbolCatalog(symbols []types.Symbol, seed int64) (*SymbolCatalog, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyCatalog
	}

	index := make(map[types.Symbol]int, len(symbols))
	for i, sym := range symbols {
		if sym == types.NoSymbol {
			return nil, fmt.Errorf("symbol #%d has an empty name", i)
		}
		if _, dup := index[sym]; dup {
			return nil, fmt.Errorf("duplicate symbol %q", sym)
		}
		index[sym] = i
	}

	return &SymbolCatalog{
		symbols: append([]types.Symbol(nil), symbols...),
		index:   index,
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
	}, nil
}

// Len 返回符号数量
func (c *SymbolCatalog) Len() int {
	return len(c.symbols)
}

// Seed 返回创建时使用的随机种子
func (c *SymbolCatalog) Seed() int64 {
	return c.seed
}

// Symbols 返回符号列表副本
func (c *SymbolCatalog) Symbols() []types.Symbol {
	return append([]types.Symbol(nil), c.symbols...)
}

// Contains 检查符号是否在目录中
func (c *SymbolCatalog) Contains(sym types.Symbol) bool {
	_, ok := c.index[sym]
	return ok
}

// Draw 均匀随机抽取一个符号
func (c *SymbolCatalog) Draw() types.Symbol {
	return c.symbols[c.rng.Intn(len(c.symbols))]
}

// Strip 生成一条长度为 n 的转轮符号序列
//
// 目录中的符号数量足够时，打乱后取前 n 个（每个符号最多出现一次）；
// 不足时逐个独立抽取（允许重复）。
func (c *SymbolCatalog) Strip(n int) []types.Symbol {
	if n <= 0 {
		return nil
	}

	if n <= len(c.symbols) {
		shuffled := c.Symbols()
		c.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled[:n]
	}

	strip := make([]types.Symbol, n)
	for i := range strip {
		strip[i] = c.Draw()
	}
	return strip
}
