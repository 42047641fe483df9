package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "fastcheck.dev/pkg/fastcheck/internal/adapter/mocks"
	"fastcheck.dev/pkg/fastcheck/internal/domain"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

func TestWorkerPool_ScanContextPerJob(t *testing.T) {
	set := adaptermocks.NewMockRuleSet(t)

	for _, content := range []string{"one", "two", "three"} {
		sc := adaptermocks.NewMockScanContext(t)
		sc.EXPECT().Scan(mock.Anything, []byte(content)).Return([]string{"r_" + content}, nil).Once()
		sc.EXPECT().Close().Return(nil).Once()
		set.EXPECT().NewScanContext().Return(sc, nil).Once()
	}

	ui := &collectingUI{}
	stats := &domain.Stats{}

	jobs := make(chan m.Job, 3)
	jobs <- m.Job{Path: "/1", Content: []byte("one")}
	jobs <- m.Job{Path: "/2", Content: []byte("two")}
	jobs <- m.Job{Path: "/3", Content: []byte("three")}
	close(jobs)

	pool := domain.NewWorkerPool(set, ui, 1, stats)
	pool.Start(context.Background(), jobs)
	pool.Wait()

	assert.Equal(t, int64(3), stats.Scanned.Load())
	assert.Equal(t, int64(3), stats.Matched.Load())
	assert.Equal(t, []m.MatchResult{
		{Path: "/1", Rules: []string{"r_one"}},
		{Path: "/2", Rules: []string{"r_two"}},
		{Path: "/3", Rules: []string{"r_three"}},
	}, ui.matches)
}

func TestWorkerPool_ScanContextFailure(t *testing.T) {
	set := adaptermocks.NewMockRuleSet(t)
	set.EXPECT().NewScanContext().Return(nil, errors.New("out of scanners")).Once()

	stats := &domain.Stats{}
	jobs := make(chan m.Job, 1)
	jobs <- m.Job{Path: "/1"}
	close(jobs)

	pool := domain.NewWorkerPool(set, &collectingUI{}, 2, stats)
	pool.Start(context.Background(), jobs)
	pool.Wait()

	assert.Equal(t, int64(1), stats.ScanErrors.Load())
	assert.Zero(t, stats.Scanned.Load())
}

func TestWorkerPool_CancelledContextStillDrains(t *testing.T) {
	var scanned []context.Context

	sc := adaptermocks.NewMockScanContext(t)
	sc.EXPECT().Scan(mock.Anything, mock.Anything).Run(func(ctx context.Context, _ []byte) {
		scanned = append(scanned, ctx)
	}).Return(nil, nil).Twice()
	sc.EXPECT().Close().Return(nil).Twice()

	mockSet := adaptermocks.NewMockRuleSet(t)
	mockSet.EXPECT().NewScanContext().Return(sc, nil).Twice()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make(chan m.Job, 2)
	jobs <- m.Job{Path: "/1"}
	jobs <- m.Job{Path: "/2"}
	close(jobs)

	stats := &domain.Stats{}
	pool := domain.NewWorkerPool(mockSet, &collectingUI{}, 1, stats)
	pool.Start(ctx, jobs)
	pool.Wait()

	require.Len(t, scanned, 2)

	for _, c := range scanned {
		assert.NoError(t, c.Err())
	}

	assert.Equal(t, int64(2), stats.Scanned.Load())
}

func TestWorkerPool_Workers(t *testing.T) {
	assert.Equal(t, 1, domain.NewWorkerPool(nil, nil, 0, &domain.Stats{}).Workers())
	assert.Equal(t, domain.DefaultWorkers, domain.NewWorkerPool(nil, nil, domain.DefaultWorkers, &domain.Stats{}).Workers())
}
