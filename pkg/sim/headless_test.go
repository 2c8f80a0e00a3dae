package sim

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/decker502/sloth"

// headlessPackages 无窗口模拟器依赖链上的包（相对仓库根目录）
// 这些包及其测试不能导入 ebiten，也只能导入本列表中的仓库内包
var headlessPackages = []string{
	"cmd/sloth-sim",
	"data",
	"pkg/components",
	"pkg/config",
	"pkg/ecs",
	"pkg/embedded",
	"pkg/entities",
	"pkg/game",
	"pkg/logger",
	"pkg/sim",
	"pkg/systems",
	"pkg/types",
}

func TestHeadlessPackagesDoNotLinkEbiten(t *testing.T) {
	allowed := make(map[string]bool, len(headlessPackages))
	for _, rel := range headlessPackages {
		allowed[modulePath+"/"+rel] = true
	}

	for _, rel := range headlessPackages {
		t.Run(rel, func(t *testing.T) {
			pkg, err := build.ImportDir(filepath.Join("..", "..", filepath.FromSlash(rel)), 0)
			if err != nil {
				t.Fatalf("build.ImportDir(%s) error: %v", rel, err)
			}

			imports := append(append([]string{}, pkg.Imports...), pkg.TestImports...)
			for _, imp := range imports {
				if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
					t.Errorf("%s imports %s", rel, imp)
				}
				if strings.HasPrefix(imp, modulePath+"/") && !allowed[imp] {
					t.Errorf("%s imports GUI package %s", rel, imp)
				}
			}
		})
	}
}
