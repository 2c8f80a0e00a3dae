// Package embedded 提供嵌入数据文件的统一访问接口
//
// 嵌入文件由 data 包声明（go:embed 只能嵌入包目录下的文件），
// 启动时通过 Init() 注入本包。访问路径统一使用 "data/" 前缀，
// 与仓库中的相对路径一致。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DataPrefix 嵌入数据文件的路径前缀
const DataPrefix = "data/"

// MachineConfigPath 默认机器配置文件的嵌入路径
const MachineConfigPath = DataPrefix + "sloth.yaml"

// ErrNotInitialized 在 Init() 之前访问嵌入文件
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// dataFS 以 data/ 目录为根的文件系统
var dataFS fs.FS

// Init 注入嵌入数据文件系统
// data 的根目录对应仓库中的 data/ 目录（通常传入 data.FS）
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return dataFS != nil
}

// normalize 标准化路径，去掉 "data/" 前缀得到 dataFS 内的路径
func normalize(path string) (string, error) {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, DataPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with %q)", path, DataPrefix)
	}
	return strings.TrimPrefix(path, DataPrefix), nil
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	if dataFS == nil {
		return false
	}
	p, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 在嵌入文件系统中匹配文件，返回带 "data/" 前缀的路径
func Glob(pattern string) ([]string, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(dataFS, p)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = DataPrefix + m
	}
	return matches, nil
}
