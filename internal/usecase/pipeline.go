package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/juju/clock"

	"ProfileScanner/internal/logging"
	"ProfileScanner/internal/ports"
)

// Step is one job of a pipeline. Run returns a one-line report.
type Step struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// PipelineDeps wires steps, pacing and reporting into a Pipeline.
type PipelineDeps struct {
	Steps []Step
	// Pause is waited between consecutive steps.
	Pause    time.Duration
	Clock    clock.Clock
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Pipeline runs steps in order and stops at the first failure.
type Pipeline struct {
	steps    []Step
	pause    time.Duration
	clock    clock.Clock
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Clock == nil {
		deps.Clock = clock.WallClock
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Pipeline{
		steps:    deps.Steps,
		pause:    deps.Pause,
		clock:    deps.Clock,
		notifier: deps.Notifier,
		logger:   deps.Logger,
	}
}

// Run executes every step and publishes the collected reports.
func (p *Pipeline) Run(ctx context.Context) error {
	reports := make([]string, 0, len(p.steps))

	for i, step := range p.steps {
		if i > 0 && p.pause > 0 {
			p.logger.Info("waiting before next step", "step", step.Name, "pause", p.pause)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.clock.After(p.pause):
			}
		}

		p.logger.Info("running step", "step", step.Name)
		report, err := step.Run(ctx)
		if err != nil {
			reports = append(reports, fmt.Sprintf("%s: failed: %v", step.Name, err))
			p.publish(ctx, reports)
			return fmt.Errorf("pipeline step %s: %w", step.Name, err)
		}
		reports = append(reports, fmt.Sprintf("%s: %s", step.Name, report))
	}

	p.publish(ctx, reports)
	return nil
}

func (p *Pipeline) publish(ctx context.Context, reports []string) {
	if p.notifier == nil || len(reports) == 0 {
		return
	}
	if err := p.notifier.PublishDigest(ctx, buildDigestMessage(reports)); err != nil {
		p.logger.Warn("publish report failed", "error", err)
	}
}

func buildDigestMessage(reports []string) string {
	var b strings.Builder
	b.WriteString("Profile scanner run\n")
	for _, report := range reports {
		b.WriteString("- ")
		b.WriteString(report)
		b.WriteString("\n")
	}
	return b.String()
}
