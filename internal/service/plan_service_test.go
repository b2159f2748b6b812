package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplanner/pkg/logx"
)

func TestNormalizeTasks(t *testing.T) {
	got := NormalizeTasks([]string{"  Team meeting ", "", "   ", "Read\n"})

	assert.Equal(t, []string{"Team meeting", "Read"}, got)
}

func TestPlanService_Generate(t *testing.T) {
	svc := NewPlanService(NoDelay, 0, logx.Nop())

	plan, err := svc.Generate(context.Background(), PlanRequest{
		Tasks: []string{" Prepare slides", "Go for a run ", "Pick up kid", "Read a book"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, []string{"Prepare slides", "Go for a run", "Pick up kid", "Read a book"}, plan.Tasks)
	require.Len(t, plan.Result.TimeBlocks, 4)
	assert.Equal(t, "4PM", plan.Result.TimeBlocks[3].Time)
	assert.Equal(t, "Pick up kid", plan.Result.TimeBlocks[3].Task)
}

func TestPlanService_EmptyRejected(t *testing.T) {
	svc := NewPlanService(NoDelay, 0, logx.Nop())

	_, err := svc.Generate(context.Background(), PlanRequest{Tasks: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestPlanService_DelayCanceled(t *testing.T) {
	svc := NewPlanService(FixedDelay(time.Hour), 0, logx.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPlanService_RateLimitPerRequester(t *testing.T) {
	svc := NewPlanService(NoDelay, 2, logx.Nop())
	ctx := context.Background()
	req := PlanRequest{Tasks: []string{"Read"}, RequesterID: 1}

	_, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, req)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, req)
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}, RequesterID: 2})
	assert.NoError(t, err, "other requesters have their own budget")
}

func (s *PlanService) limiterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func TestPlanService_IdleLimitersDropped(t *testing.T) {
	svc := NewPlanService(NoDelay, 1, logx.Nop())
	clock := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		_, err := svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}, RequesterID: id})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, svc.limiterCount())

	_, err := svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}, RequesterID: 1})
	assert.ErrorIs(t, err, ErrRateLimited, "still limited within the minute")

	clock = clock.Add(2 * time.Minute)
	_, err = svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}, RequesterID: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.limiterCount(), "refilled limiters are swept")

	_, err = svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}, RequesterID: 1})
	assert.NoError(t, err)
}

func TestPlanService_UniqueIDs(t *testing.T) {
	svc := NewPlanService(nil, 0, logx.Nop())
	ctx := context.Background()

	a, err := svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}})
	require.NoError(t, err)
	b, err := svc.Generate(ctx, PlanRequest{Tasks: []string{"Read"}})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Result, b.Result)
}
