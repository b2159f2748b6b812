package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplanner/pkg/logx"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "0 0 8 * * *"},
		{in: " 7:45 ", want: "0 45 7 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "08:60", wantErr: true},
		{in: "8", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestPromptScheduler_ScheduleDaily(t *testing.T) {
	s := NewPromptScheduler(time.UTC, logx.Nop())

	_, err := s.ScheduleDaily("nope", func() {})
	assert.Error(t, err)

	id, err := s.ScheduleDaily("09:30", func() {})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	// The entry's next run is computed once the cron loop is running.
	require.Eventually(t, func() bool { return !s.Next(id).IsZero() }, time.Second, 5*time.Millisecond)
	next := s.Next(id).UTC()
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 30, next.Minute())
}
