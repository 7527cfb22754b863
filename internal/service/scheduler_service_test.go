package service

import (
	"context"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minute  int
		hour    int
		wantErr bool
	}{
		{in: "09:00", minute: 0, hour: 9},
		{in: "23:59", minute: 59, hour: 23},
		{in: "0:5", minute: 5, hour: 0},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12:00:00", wantErr: true},
	}
	for _, tc := range cases {
		minute, hour, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q) error = %v", tc.in, err)
			continue
		}
		if minute != tc.minute || hour != tc.hour {
			t.Errorf("parseClock(%q) = %d:%d, want %d:%d", tc.in, hour, minute, tc.hour, tc.minute)
		}
	}
}

func TestScheduler_RejectsBadInput(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	noop := func(context.Context) error { return nil }

	if err := s.ScheduleEvery("too-fast", 100*time.Millisecond, noop); err == nil {
		t.Error("sub-second interval should be rejected")
	}
	if err := s.ScheduleDaily("bad-clock", "25:00", noop); err == nil {
		t.Error("invalid clock time should be rejected")
	}
}

func TestScheduler_RunsIntervalJob(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	fired := make(chan struct{}, 4)
	err := s.ScheduleEvery("tick", time.Second, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("ScheduleEvery() error = %v", err)
	}

	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("interval job never fired")
	}
}
