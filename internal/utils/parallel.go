package utils

import (
	"sync"
)

// ParallelTask represents a generic task that can be executed in parallel
type ParallelTask func() error

// RunParallelTasks executes multiple tasks in parallel and returns the first
// error encountered, if any. Result order matches task order.
func RunParallelTasks(tasks []ParallelTask) error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t ParallelTask) {
			defer wg.Done()
			errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
