package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/juju/clock/testclock"
	check "gopkg.in/check.v1"

	"ProfileScanner/internal/mocks"
)

var _ = check.Suite(new(PipelineTestSuite))

type PipelineTestSuite struct {
	clk *testclock.Clock
}

func (s *PipelineTestSuite) SetUpTest(c *check.C) {
	s.clk = testclock.NewClock(time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC))
}

func step(name string, ran *[]string, err error) Step {
	return Step{Name: name, Run: func(context.Context) (string, error) {
		*ran = append(*ran, name)
		return name + " done", err
	}}
}

func (s *PipelineTestSuite) TestStepsRunInOrderWithPause(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	var ran []string
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().PublishDigest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, digest string) error {
			c.Assert(strings.Contains(digest, "- harvest: harvest done\n- profile: profile done\n"), check.Equals, true)
			return nil
		},
	)

	p := NewPipeline(PipelineDeps{
		Steps:    []Step{step("harvest", &ran, nil), step("profile", &ran, nil)},
		Pause:    10 * time.Minute,
		Clock:    s.clk,
		Notifier: notifier,
	})

	done := make(chan error, 1)
	go func() { done <- p.Run(context.TODO()) }()

	c.Assert(s.clk.WaitAdvance(10*time.Minute, time.Second, 1), check.IsNil)
	select {
	case err := <-done:
		c.Assert(err, check.IsNil)
	case <-time.After(5 * time.Second):
		c.Fatal("pipeline did not finish")
	}
	c.Assert(ran, check.DeepEquals, []string{"harvest", "profile"})
}

func (s *PipelineTestSuite) TestFailureStopsAndIsReported(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	var ran []string
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().PublishDigest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, digest string) error {
			c.Assert(strings.Contains(digest, "harvest: failed: quota exceeded"), check.Equals, true)
			return errors.New("telegram down")
		},
	)

	p := NewPipeline(PipelineDeps{
		Steps:    []Step{step("harvest", &ran, errors.New("quota exceeded")), step("profile", &ran, nil)},
		Pause:    time.Minute,
		Clock:    s.clk,
		Notifier: notifier,
	})

	err := p.Run(context.TODO())
	c.Assert(err, check.ErrorMatches, "pipeline step harvest: quota exceeded")
	c.Assert(ran, check.DeepEquals, []string{"harvest"})
}

func (s *PipelineTestSuite) TestCancelDuringPause(c *check.C) {
	var ran []string
	p := NewPipeline(PipelineDeps{
		Steps: []Step{step("harvest", &ran, nil), step("profile", &ran, nil)},
		Pause: time.Hour,
		Clock: s.clk,
	})

	ctx, cancel := context.WithCancel(context.TODO())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	c.Assert(s.clk.WaitAdvance(0, time.Second, 1), check.IsNil)
	cancel()

	select {
	case err := <-done:
		c.Assert(errors.Is(err, context.Canceled), check.Equals, true)
	case <-time.After(5 * time.Second):
		c.Fatal("pipeline did not stop")
	}
	c.Assert(ran, check.DeepEquals, []string{"harvest"})
}

func (s *PipelineTestSuite) TestSchedulerRunsPipelineOnTrigger(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	var ran []string
	p := NewPipeline(PipelineDeps{Steps: []Step{step("prime", &ran, errors.New("boom"))}, Clock: s.clk})

	driver := mocks.NewMockScheduler(ctrl)
	gomock.InOrder(
		driver.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, job func(time.Time)) error {
				job(s.clk.Now())
				job(s.clk.Now())
				return nil
			},
		),
		driver.EXPECT().Stop(gomock.Any()).Return(nil),
	)

	sched := NewScheduler(driver, p, time.UTC, nil)
	c.Assert(sched.Start(context.TODO()), check.IsNil)
	c.Assert(sched.Stop(context.TODO()), check.IsNil)
	c.Assert(ran, check.DeepEquals, []string{"prime", "prime"})
}
