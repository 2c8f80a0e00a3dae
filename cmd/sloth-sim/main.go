// sloth-sim 无窗口批量模拟老虎机，输出 JSON 报告
//
// 用法：
//
//	go run ./cmd/sloth-sim --spins 1000 --runs 8 --workers 4 --out report.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/decker502/sloth/data"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/embedded"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/sim"
)

var (
	configPath     = flag.String("config", "", "机器配置文件路径（默认使用内置 data/sloth.yaml）")
	spins          = flag.Int("spins", 100, "每台机器的旋转次数")
	runs           = flag.Int("runs", 1, "机器数量（种子依次为 seed, seed+1, ...）")
	seed           = flag.Int64("seed", 1, "起始随机种子")
	workers        = flag.Int("workers", 4, "并发数")
	forceStopAfter = flag.Float64("force-stop-after", 0, "旋转开始后多少秒强制停止，0 表示自然停止")
	outPath        = flag.String("out", "", "报告输出文件，为空时输出到标准输出")
	verbose        = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	l := logger.New(&logger.Config{Level: level, App: "sloth-sim", Quiet: !*verbose})
	defer func() { _ = l.Sync() }()

	if err := run(l); err != nil {
		fmt.Fprintf(os.Stderr, "sloth-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(l *zap.Logger) error {
	embedded.Init(data.FS)

	cfg, err := config.ResolveMachineConfig(*configPath)
	if err != nil {
		return err
	}

	simulator, err := sim.New(cfg, sim.Options{
		Spins:          *spins,
		ForceStopAfter: *forceStopAfter,
	}, l)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := simulator.RunBatch(ctx, sim.Seeds(*seed, *runs), *workers)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *outPath, err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteJSON(out); err != nil {
		return err
	}

	agg := report.Aggregate
	fmt.Fprintf(os.Stderr, "spins=%d wins=%d hit=%.4f\n", agg.Spins, agg.WinningSpins, agg.HitFrequency)
	for _, count := range sim.SortedKeys(agg.MatchCounts) {
		fmt.Fprintf(os.Stderr, "  %d-of-a-kind: %d\n", count, agg.MatchCounts[count])
	}
	return nil
}
