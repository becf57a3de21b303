package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"DominanceSentinel/internal/collector"
	"DominanceSentinel/internal/metrics"
	"DominanceSentinel/internal/model"
	"DominanceSentinel/internal/notifier"
	"DominanceSentinel/internal/recorder"
	"DominanceSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

const historyLimit = 7

// Scheduler manages the cron tasks and Telegram commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Pairs     []model.Pair
	Options   strategy.Options
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, pairs []model.Pair, opts strategy.Options,
	sender notifier.Sender, rec recorder.Recorder, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Pairs:     pairs,
		Options:   opts,
		Notifier:  sender,
		Recorder:  rec,
		Metrics:   m,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily analysis task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Printf("[INFO] running daily analysis for %d pair(s)", len(s.Pairs))
	for _, pair := range s.Pairs {
		s.analysePair(pair)
	}
}

// analysePair runs one pipeline and delivers the outcome. Pairs never share state.
func (s *Scheduler) analysePair(pair model.Pair) {
	data, err := s.Collector.Collect(s.Ctx, pair)
	if err != nil {
		log.Printf("[ERROR] collect %s: %v", pair.Name, err)
		s.Metrics.ObserveFetchError(s.Collector.Fetcher.Name())
		s.fail(pair, err)
		return
	}

	a, err := strategy.Evaluate(pair, data.PricesA, data.PricesB, s.Options)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInputData) || errors.Is(err, model.ErrInsufficientHistory) {
			log.Printf("[WARN] no analysis for %s: %v", pair.Name, err)
		} else {
			log.Printf("[ERROR] evaluate %s: %v", pair.Name, err)
		}
		s.fail(pair, err)
		return
	}

	s.Metrics.ObserveAnalysis(a)
	id, err := s.Recorder.RecordAnalysis(a)
	if err != nil {
		log.Printf("[ERROR] record analysis %s: %v", pair.Name, err)
	} else if id != "" {
		log.Printf("[INFO] analysis %s recorded as %s", pair.Name, id)
	}
	s.trySend(notifier.FormatAnalysisReport(a))
}

func (s *Scheduler) fail(pair model.Pair, err error) {
	s.Metrics.ObserveFailure(pair, err)
	if recErr := s.Recorder.RecordFailure(pair, err); recErr != nil {
		log.Printf("[ERROR] record failure %s: %v", pair.Name, recErr)
	}
	s.trySend(notifier.FormatNoAnalysis(pair, err))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	switch fields[0] {
	case "/report":
		s.dailyTask()
		return ""
	case "/global":
		g, err := s.Collector.Global(s.Ctx)
		if err != nil {
			log.Printf("[ERROR] global snapshot: %v", err)
			s.Metrics.ObserveFetchError(s.Collector.Fetcher.Name())
			return fmt.Sprintf("❌ global snapshot unavailable: %v", err)
		}
		return notifier.FormatGlobalSnapshot(g)
	case "/history":
		pair, ok := s.lookupPair(fields[1:])
		if !ok {
			return fmt.Sprintf("unknown pair: %s", strings.Join(fields[1:], " "))
		}
		recs, err := s.Recorder.RecentAnalyses(pair.Name, historyLimit)
		if err != nil {
			log.Printf("[ERROR] load history %s: %v", pair.Name, err)
			return fmt.Sprintf("❌ history unavailable: %v", err)
		}
		return notifier.FormatHistory(pair.Name, recs)
	default:
		return notifier.FormatHelp()
	}
}

// lookupPair resolves an optional pair argument; no argument means the first configured pair.
func (s *Scheduler) lookupPair(args []string) (model.Pair, bool) {
	if len(s.Pairs) == 0 {
		return model.Pair{}, false
	}
	if len(args) == 0 {
		return s.Pairs[0], true
	}
	for _, p := range s.Pairs {
		if strings.EqualFold(p.Name, args[0]) {
			return p, true
		}
	}
	return model.Pair{}, false
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
