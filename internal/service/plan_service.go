package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"dayplanner/internal/model"
	"dayplanner/internal/planner"
	"dayplanner/pkg/logx"
)

var (
	ErrEmptyPlan   = errors.New("no tasks to plan")
	ErrRateLimited = errors.New("too many plan requests, try again in a minute")
)

// PlanRequest represents data required to build a plan.
type PlanRequest struct {
	Tasks []string
	// RequesterID keys the rate limiter (Telegram user ID, 0 for the CLI).
	RequesterID int64
}

// Plan is one generated schedule.
type Plan struct {
	ID        string
	Tasks     []string
	Result    model.ScheduleResult
	CreatedAt time.Time
}

// PlanService wraps the planner with the caller-side concerns: input
// cleanup, simulated latency, per-requester rate limiting and logging.
type PlanService struct {
	delay         DelayPolicy
	log           logx.Logger
	now           func() time.Time
	ratePerMinute int

	mu        sync.Mutex
	limiters  map[int64]*rate.Limiter
	lastSweep time.Time
}

// limiterSweepEvery bounds how often idle limiters are dropped.
const limiterSweepEvery = time.Minute

// NewPlanService creates a PlanService. ratePerMinute <= 0 disables rate
// limiting.
func NewPlanService(delay DelayPolicy, ratePerMinute int, log logx.Logger) *PlanService {
	if delay == nil {
		delay = NoDelay
	}
	return &PlanService{
		delay:         delay,
		log:           log.With(logx.String("comp", "plan")),
		now:           time.Now,
		ratePerMinute: ratePerMinute,
		limiters:      make(map[int64]*rate.Limiter),
	}
}

// Generate cleans the task list, waits out the delay policy and plans the
// day.
func (s *PlanService) Generate(ctx context.Context, req PlanRequest) (*Plan, error) {
	tasks := NormalizeTasks(req.Tasks)
	if len(tasks) == 0 {
		return nil, ErrEmptyPlan
	}
	if !s.allow(req.RequesterID) {
		s.log.Warn("plan rate limited", logx.Int64("requester", req.RequesterID))
		return nil, ErrRateLimited
	}

	id := uuid.NewString()
	started := s.now()
	if err := s.delay.Wait(ctx); err != nil {
		return nil, fmt.Errorf("plan %s: %w", id, err)
	}

	result := planner.GenerateSchedule(tasks)
	s.log.Info("plan generated",
		logx.String("plan_id", id),
		logx.Int64("requester", req.RequesterID),
		logx.Int("tasks", len(tasks)),
		logx.Duration("took", s.now().Sub(started)),
	)
	if s.log.Enabled(logx.LevelDebug) {
		for _, block := range result.TimeBlocks {
			s.log.Debug("time block",
				logx.String("plan_id", id),
				logx.String("time", block.Time),
				logx.String("category", block.Category.String()),
				logx.String("task", block.Task),
			)
		}
	}

	return &Plan{
		ID:        id,
		Tasks:     tasks,
		Result:    result,
		CreatedAt: started,
	}, nil
}

func (s *PlanService) allow(requesterID int64) bool {
	if s.ratePerMinute <= 0 {
		return true
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastSweep) >= limiterSweepEvery {
		s.sweepLimiters(now)
	}
	lim, ok := s.limiters[requesterID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.ratePerMinute)), s.ratePerMinute)
		s.limiters[requesterID] = lim
	}
	return lim.AllowN(now, 1)
}

// sweepLimiters drops limiters whose bucket has refilled; a fresh limiter
// behaves the same. Callers hold s.mu.
func (s *PlanService) sweepLimiters(now time.Time) {
	burst := float64(s.ratePerMinute)
	for id, lim := range s.limiters {
		if lim.TokensAt(now) >= burst {
			delete(s.limiters, id)
		}
	}
	s.lastSweep = now
}

// NormalizeTasks trims every entry and drops the blank ones, the same way
// the task input form does before submitting.
func NormalizeTasks(raw []string) []string {
	tasks := make([]string, 0, len(raw))
	for _, t := range raw {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tasks = append(tasks, trimmed)
		}
	}
	return tasks
}
