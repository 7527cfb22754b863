package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 30 * time.Second

// SchedulerService runs background jobs on a cron clock. Each job
// receives a context bounded by jobTimeout and has its error logged
// under the name it was registered with.
type SchedulerService struct {
	cron *cron.Cron
}

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
	}
}

// ScheduleDaily registers a job that fires once a day at the given
// HH:MM time string.
func (s *SchedulerService) ScheduleDaily(name, timeStr string, job Job) error {
	minute, hour, err := parseClock(timeStr)
	if err != nil {
		return err
	}
	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	_, err = s.cron.AddFunc(spec, s.wrap(name, job))
	return err
}

// ScheduleEvery registers a job that fires on a fixed interval.
func (s *SchedulerService) ScheduleEvery(name string, interval time.Duration, job Job) error {
	if interval < time.Second {
		return fmt.Errorf("interval %s too short, minimum is 1s", interval)
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, err := s.cron.AddFunc(spec, s.wrap(name, job))
	return err
}

func (s *SchedulerService) wrap(name string, job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			log.Printf("[error] job %s: %v", name, err)
		}
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the clock and waits for in-flight jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func parseClock(timeStr string) (minute, hour int, err error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", timeStr)
	}
	return minute, hour, nil
}
