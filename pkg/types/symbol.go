// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Symbol 标识一张可显示的符号图片（如 "cherry"、"seven"）
// 只支持相等比较，不存在大小顺序
type Symbol string

// NoSymbol 空符号，用于表示"没有取到符号"
const NoSymbol Symbol = ""

// String 返回符号名称
func (s Symbol) String() string {
	if s == NoSymbol {
		return "<none>"
	}
	return string(s)
}

// SymbolsFromStrings 将字符串列表转换为符号列表
func SymbolsFromStrings(names []string) []Symbol {
	out := make([]Symbol, len(names))
	for i, name := range names {
		out[i] = Symbol(name)
	}
	return out
}

// SymbolNames 将符号列表转换为字符串列表
func SymbolNames(symbols []Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}
