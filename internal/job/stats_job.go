package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"goal-tracker-api/internal/metrics"
	"goal-tracker-api/internal/repository"
)

// StatsJob refreshes the business gauges: live boards and non-archived goals
type StatsJob struct {
	boardRepo repository.BoardRepository
	goalRepo  repository.GoalRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewStatsJob creates a new StatsJob instance
func NewStatsJob(
	boardRepo repository.BoardRepository,
	goalRepo repository.GoalRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatsJob {
	return &StatsJob{
		boardRepo: boardRepo,
		goalRepo:  goalRepo,
		metrics:   m,
		logger:    logger,
	}
}

// Run executes one stats collection pass
func (j *StatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	boards, err := j.boardRepo.CountLive(ctx)
	if err != nil {
		j.logger.Error("Failed to count live boards", zap.Error(err))
	} else {
		j.metrics.SetBoardsTotal(boards)
	}

	goals, err := j.goalRepo.CountActive(ctx)
	if err != nil {
		j.logger.Error("Failed to count active goals", zap.Error(err))
	} else {
		j.metrics.SetGoalsTotal(goals)
	}
}
