// Package shell is the single-window front end. It owns the Idle/Analyzing
// state machine and the contents of the two output panes.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/report"
)

type State string

const (
	Idle      State = "idle"
	Analyzing State = "analyzing"
)

var ErrBusy = errors.New("An analysis is already in progress.")

type Submitter interface {
	Submit(ctx context.Context, url string) *analysis.Task
}

// Snapshot is a consistent copy of the shell taken under its lock.
type Snapshot struct {
	State       State                  `json:"state"`
	URL         string                 `json:"url"`
	TaskID      string                 `json:"task_id,omitempty"`
	Result      *models.AnalysisResult `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	ResultsText string                 `json:"results_text"`
	SpamText    string                 `json:"spam_text"`
}

type Shell struct {
	ctx      context.Context
	analyzer Submitter

	mu     sync.Mutex
	state  State
	url    string
	task   *analysis.Task
	result *models.AnalysisResult
	errMsg string

	wg sync.WaitGroup
}

// New returns an Idle shell. Tasks inherit ctx, so cancelling it aborts any
// in-flight analysis.
func New(ctx context.Context, analyzer Submitter) *Shell {
	return &Shell{
		ctx:      ctx,
		analyzer: analyzer,
		state:    Idle,
	}
}

// Submit starts an analysis of url. An empty url raises the error dialog
// without leaving Idle.
func (s *Shell) Submit(url string) error {
	url = strings.TrimSpace(url)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Analyzing {
		return ErrBusy
	}
	s.url = url
	if url == "" {
		s.errMsg = analysis.ErrEmptyURL.Error()
		return analysis.ErrEmptyURL
	}

	task := s.analyzer.Submit(s.ctx, url)
	s.state = Analyzing
	s.task = task
	s.errMsg = ""

	slog.Info("[Shell] Analysis started",
		slog.String("task_id", task.ID.String()),
		slog.String("url", url))

	s.wg.Add(1)
	go s.await(task)
	return nil
}

func (s *Shell) await(task *analysis.Task) {
	defer s.wg.Done()
	outcome := <-task.Done()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Idle
	s.task = nil
	if outcome.Err != nil {
		// panes keep whatever the previous successful run rendered
		s.errMsg = outcome.Err.Error()
		return
	}
	s.result = outcome.Result
	s.errMsg = ""
}

// Cancel aborts the in-flight analysis. It reports false when Idle.
func (s *Shell) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return false
	}
	slog.Info("[Shell] Cancelling analysis", slog.String("task_id", s.task.ID.String()))
	s.task.Cancel()
	return true
}

// Dismiss closes the error dialog.
func (s *Shell) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:  s.state,
		URL:    s.url,
		Result: s.result,
		Error:  s.errMsg,
	}
	if s.task != nil {
		snap.TaskID = s.task.ID.String()
	}
	if s.result != nil {
		snap.ResultsText = report.Summary(s.result.Summary)
		snap.SpamText = report.Spam(s.result.Spam)
	}
	return snap
}

// Wait blocks until every started analysis has been collected.
func (s *Shell) Wait() {
	s.wg.Wait()
}
