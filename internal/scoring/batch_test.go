package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchPartialFailure(t *testing.T) {
	// Five items where item 3 fails: all five are attempted, the failure is
	// recorded with its key and message, and the counts add up.
	var attempted []string
	items := make([]BatchItem, 0, 5)
	for i := 1; i <= 5; i++ {
		i := i
		items = append(items, BatchItem{
			Key: fmt.Sprintf("item %d", i),
			Run: func() error {
				attempted = append(attempted, fmt.Sprintf("item %d", i))
				if i == 3 {
					return errors.New("boom")
				}
				return nil
			},
		})
	}

	result := RunBatch(items, nil, nil)

	assert.Equal(t, 4, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "item 3", result.Errors[0].Key)
	assert.Equal(t, "boom", result.Errors[0].Message)
	assert.Len(t, attempted, 5) // the failure did not halt the batch
}

func TestRunBatchEmpty(t *testing.T) {
	result := RunBatch(nil, nil, nil)
	assert.Zero(t, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
	assert.Empty(t, result.Errors)
}

func TestRunBatchProgressReporting(t *testing.T) {
	// Progress is reported after every item, including failed ones.
	var reports [][2]int
	items := []BatchItem{
		{Key: "a", Run: func() error { return nil }},
		{Key: "b", Run: func() error { return errors.New("bad") }},
		{Key: "c", Run: func() error { return nil }},
	}

	RunBatch(items, func(completed, total int) {
		reports = append(reports, [2]int{completed, total})
	}, nil)

	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, reports)
}

func TestRunBatchCancellationBetweenItems(t *testing.T) {
	// The cancel flag is checked before each item: cancelling after the second
	// item leaves the third unattempted and out of the counts.
	ran := 0
	cancelled := func() bool { return ran >= 2 }
	items := []BatchItem{
		{Key: "a", Run: func() error { ran++; return nil }},
		{Key: "b", Run: func() error { ran++; return nil }},
		{Key: "c", Run: func() error { ran++; return nil }},
	}

	result := RunBatch(items, nil, cancelled)

	assert.Equal(t, 2, ran)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.FailedCount)
}

func TestRunBatchRecoversPanics(t *testing.T) {
	// A panicking item is downgraded to an error entry; the following item
	// still runs.
	items := []BatchItem{
		{Key: "panicky", Run: func() error { panic("corrupt record") }},
		{Key: "fine", Run: func() error { return nil }},
	}

	result := RunBatch(items, nil, nil)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "panicky", result.Errors[0].Key)
	assert.Contains(t, result.Errors[0].Message, "corrupt record")
}

func TestRunBatchSequentialOrder(t *testing.T) {
	// Items run one at a time in the order given — no interleaving, no skips.
	var order []string
	items := []BatchItem{
		{Key: "1", Run: func() error { order = append(order, "1"); return nil }},
		{Key: "2", Run: func() error { order = append(order, "2"); return nil }},
		{Key: "3", Run: func() error { order = append(order, "3"); return nil }},
	}

	RunBatch(items, nil, nil)
	assert.Equal(t, []string{"1", "2", "3"}, order)
}
