package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/spacesedan/reviewlens/internal/models"
)

type Outcome struct {
	Result *models.AnalysisResult
	Err    error
}

// Task is an analysis running in the background. Done yields exactly one
// Outcome and is then closed.
type Task struct {
	ID     uuid.UUID
	URL    string
	done   chan Outcome
	cancel context.CancelFunc
}

func (t *Task) Done() <-chan Outcome {
	return t.done
}

func (t *Task) Cancel() {
	t.cancel()
}

// Submit starts Run on its own goroutine, bounded by the analyzer timeout.
// The result carries the task's ID.
func (a *Analyzer) Submit(ctx context.Context, url string) *Task {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	task := &Task{
		ID:     uuid.New(),
		URL:    url,
		done:   make(chan Outcome, 1),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		defer close(task.done)

		result, err := a.execute(ctx, task.ID, url)
		task.done <- Outcome{Result: result, Err: err}
	}()

	return task
}
