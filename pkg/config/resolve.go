package config

import (
	"errors"
	"fmt"

	"github.com/decker502/sloth/pkg/embedded"
)

// ResolveMachineConfig 加载机器配置
//
// path 非空时从文件加载；否则读取嵌入的 data/sloth.yaml；
// embedded 未初始化时使用内置默认配置。
// 桌面端、移动端和模拟器共用此函数，不依赖任何渲染包。
func ResolveMachineConfig(path string) (*MachineConfig, error) {
	if path != "" {
		return LoadMachineConfig(path)
	}

	data, err := embedded.ReadFile(embedded.MachineConfigPath)
	if errors.Is(err, embedded.ErrNotInitialized) {
		return DefaultMachineConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded machine config: %w", err)
	}

	cfg, err := ParseMachineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("embedded machine config: %w", err)
	}
	return cfg, nil
}
