package workers

import (
	"chat-hub/domain"
	"chat-hub/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatsReporterWorker_ReportsUntilCanceled(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIStatsSource(ctrl)

	reported := make(chan struct{}, 8)
	source.EXPECT().Stats().DoAndReturn(func() domain.ServerStats {
		select {
		case reported <- struct{}{}:
		default:
		}
		return domain.ServerStats{Online: 2, Transfers: domain.TransferStats{Queued: 1, Capacity: 15}}
	}).MinTimes(2)

	worker := NewStatsReporterWorker(slog.Default(), source, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.Run(ctx)
	}()

	// Given at least one periodic report
	<-reported

	// When the worker is stopped
	cancel()

	// Then it reports a last time and returns
	req.NoError(<-done)
}

func TestStatsReporterWorker_DisabledInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIStatsSource(ctrl)

	worker := NewStatsReporterWorker(slog.Default(), source, 0)

	require.NoError(t, worker.Run(context.Background()))
}
