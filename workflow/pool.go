package workflow

import (
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Task is one unit of per-recording work.
type Task struct {
	Name string
	Run  func() error
}

// Result captures the outcome of one task. A failed task carries its error
// and the name of the input that caused it; it never aborts the batch.
type Result struct {
	Name string
	Err  error
}

// RunPool fans tasks out across a fixed pool of workers fed from a bounded
// queue. Results come back in completion order, one per task. The optional
// progress bar ticks once per finished task.
func RunPool(workers int, tasks []Task, bar *progressbar.ProgressBar) []Result {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Task)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				err := runTask(task)
				if bar != nil {
					_ = bar.Add(1)
				}
				results <- Result{Name: task.Name, Err: err}
			}
		}()
	}

	go func() {
		for _, task := range tasks {
			jobs <- task
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(tasks))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// runTask converts a panicking task into a failed result so one bad
// recording cannot take the whole batch down.
func runTask(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task.Run()
}

// Failures returns the subset of results that carry an error.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
