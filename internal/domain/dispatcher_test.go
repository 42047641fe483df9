package domain_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "fastcheck.dev/pkg/fastcheck/internal/adapter/mocks"
	"fastcheck.dev/pkg/fastcheck/internal/domain"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

func drain(jobs <-chan m.Job) []m.Job {
	var out []m.Job
	for job := range jobs {
		out = append(out, job)
	}

	return out
}

func TestDispatcher_Run(t *testing.T) {
	fsys := adaptermocks.NewMockSourceFSAdapter(t)
	fsys.EXPECT().ReadFile(m.Path("/a")).Return([]byte("alpha"), nil).Once()
	fsys.EXPECT().ReadFile(m.Path("/b")).Return(nil, fs.ErrPermission).Once()
	fsys.EXPECT().ReadFile(m.Path("/c")).Return([]byte("gamma"), nil).Once()

	stats := &domain.Stats{}
	jobs := make(chan m.Job, 3)

	err := domain.NewDispatcher(fsys, 0, stats).Run(context.Background(), []m.Path{"/a", "/b", "/c"}, jobs)
	require.NoError(t, err)

	assert.Equal(t, []m.Job{
		{Path: "/a", Content: []byte("alpha")},
		{Path: "/c", Content: []byte("gamma")},
	}, drain(jobs))
	assert.Equal(t, int64(1), stats.ReadErrors.Load())
}

func TestDispatcher_Run_MaxFileSize(t *testing.T) {
	fsys := adaptermocks.NewMockSourceFSAdapter(t)
	fsys.EXPECT().FileInfo(m.Path("/small")).Return(fakeInfo{size: 4}, nil).Once()
	fsys.EXPECT().FileInfo(m.Path("/large")).Return(fakeInfo{size: 400}, nil).Once()
	fsys.EXPECT().FileInfo(m.Path("/gone")).Return(nil, fs.ErrNotExist).Once()
	fsys.EXPECT().ReadFile(m.Path("/small")).Return([]byte("tiny"), nil).Once()

	stats := &domain.Stats{}
	jobs := make(chan m.Job, 3)

	err := domain.NewDispatcher(fsys, 100, stats).Run(context.Background(), []m.Path{"/small", "/large", "/gone"}, jobs)
	require.NoError(t, err)

	assert.Len(t, drain(jobs), 1)
	assert.Equal(t, int64(1), stats.Skipped.Load())
	assert.Equal(t, int64(1), stats.ReadErrors.Load())
	fsys.AssertNotCalled(t, "ReadFile", m.Path("/large"))
}

func TestDispatcher_Run_Cancelled(t *testing.T) {
	t.Run("before the first path", func(t *testing.T) {
		fsys := adaptermocks.NewMockSourceFSAdapter(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		jobs := make(chan m.Job, 1)

		err := domain.NewDispatcher(fsys, 0, &domain.Stats{}).Run(ctx, []m.Path{"/a"}, jobs)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, drain(jobs))
	})

	t.Run("while blocked on a full channel", func(t *testing.T) {
		fsys := adaptermocks.NewMockSourceFSAdapter(t)
		fsys.EXPECT().ReadFile(m.Path("/a")).Return([]byte("x"), nil).Once()
		fsys.EXPECT().ReadFile(mock.Anything).Return([]byte("x"), nil).Maybe()

		ctx, cancel := context.WithCancel(context.Background())
		jobs := make(chan m.Job)

		done := make(chan error, 1)

		go func() {
			done <- domain.NewDispatcher(fsys, 0, &domain.Stats{}).Run(ctx, []m.Path{"/a", "/b", "/c"}, jobs)
		}()

		<-jobs
		cancel()

		err := <-done
		assert.True(t, errors.Is(err, context.Canceled))

		_, open := <-jobs
		assert.False(t, open, "jobs must be closed when the dispatcher returns")
	})
}
