package sim

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BatchReport 批量模拟结果
type BatchReport struct {
	// Runs 每个种子的报告，顺序与输入种子一致
	Runs []*Report `json:"runs"`
	// Aggregate 所有机器的汇总
	Aggregate *Report `json:"aggregate"`
}

// RunBatch 为每个种子运行一台机器
//
// 机器在容量为 workers 的 ants 协程池上运行，由 errgroup 收集第一个错误；
// 任一机器失败会取消其余尚未开始的旋转。
//
// 参数：
//   - ctx: 上下文
//   - seeds: 种子列表，每个种子一台机器
//   - workers: 并发数，<= 0 时为 1
func (s *Simulator) RunBatch(ctx context.Context, seeds []int64, workers int) (*BatchReport, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seeds", ErrInvalidOptions)
	}
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	runs := make([]*Report, len(seeds))
	g, gctx := errgroup.WithContext(ctx)

	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			done := make(chan error, 1)
			if err := pool.Submit(func() {
				report, err := s.Run(gctx, seed)
				runs[i] = report
				done <- err
			}); err != nil {
				return fmt.Errorf("failed to submit seed %d: %w", seed, err)
			}
			return <-done
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggregate := newReport(0)
	for _, r := range runs {
		aggregate.merge(r)
	}
	aggregate.finish()

	s.logger.Info("[Simulator] batch finished",
		zap.Int("machines", len(seeds)),
		zap.Int("workers", workers),
		zap.Int("spins", aggregate.Spins),
		zap.Float64("hitFrequency", aggregate.HitFrequency))

	return &BatchReport{Runs: runs, Aggregate: aggregate}, nil
}

// Seeds 生成从 base 开始的 n 个连续种子
func Seeds(base int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	return seeds
}

// WriteJSON 以缩进 JSON 输出报告
func (b *BatchReport) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
