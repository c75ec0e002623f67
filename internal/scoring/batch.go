// batch.go — the Recalculation Batch Runner.
// Administrators occasionally need to rerun a computation across the whole
// club: every player's handicap after a course's par is corrected, or every
// game's bonus points after the point policy changes. The runner walks the
// items one at a time so progress can be reported after each, and it treats a
// single item's failure as data to report, never as a reason to stop — the
// admin sees "47 succeeded, 3 failed" plus the three error messages, not an
// aborted batch.
package scoring

import "fmt"

// BatchItem is one unit of recalculation work. Key identifies the player or
// game for error reporting; Run performs the item's read-compute-write cycle
// (the closure is built by the caller, which is where the database lives).
type BatchItem struct {
	Key string
	Run func() error
}

// ItemError records one item's failure without stopping the batch.
type ItemError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Result summarises a finished (or cancelled) batch. SuccessCount plus
// FailedCount always equals the number of items actually attempted.
type Result struct {
	SuccessCount int         `json:"success_count"`
	FailedCount  int         `json:"failed_count"`
	Errors       []ItemError `json:"errors"`
}

// ProgressFunc is called after each item with how many items have been
// attempted so far out of the total.
type ProgressFunc func(completed, total int)

// RunBatch applies every item sequentially. progress may be nil; cancelled may
// be nil and is otherwise checked before each item so a caller can stop the
// batch between items (items not yet attempted are simply left out of the
// counts). Item failures — returned errors and panics alike — are downgraded
// to Errors entries and the batch moves on.
func RunBatch(items []BatchItem, progress ProgressFunc, cancelled func() bool) Result {
	result := Result{Errors: []ItemError{}}
	total := len(items)

	for i, item := range items {
		if cancelled != nil && cancelled() {
			break
		}

		if err := runItem(item); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, ItemError{
				Key:     item.Key,
				Message: err.Error(),
			})
		} else {
			result.SuccessCount++
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	return result
}

// runItem executes one item, converting a panic inside the closure into an
// ordinary error so a single bad record can never take down the whole batch.
func runItem(item BatchItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return item.Run()
}
