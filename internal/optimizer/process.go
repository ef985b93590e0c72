package optimizer

import (
	"errors"
	"fmt"
	"log"

	"github.com/feedtools/feed-optimizer/internal/types"
)

// Process runs one optimizer against one batch with full fault
// isolation. Exactly one of two outcomes is returned:
//
//   - success: a mutated deep copy of the batch plus a success result,
//     leaving the caller's batch untouched.
//   - failure: the caller's ORIGINAL batch plus a failure result. A
//     broken optimizer degrades to a no-op for that optimizer only; it
//     never aborts the pipeline.
//
// The only error Process returns is ErrNotImplemented, which marks the
// optimizer itself as structurally broken and must not be swallowed.
func Process(opt Optimizer, batch *types.Batch, language, country, currency string) (out *types.Batch, result types.Result, err error) {
	parameter := opt.Parameter()
	working := batch.Clone()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error while running optimization %s: panic: %v", parameter, r)
			out = batch
			result = types.FailureResult(fmt.Sprintf("panic: %v", r))
			err = nil
		}
	}()

	counts, applyErr := opt.Apply(working, language, country, currency)
	if applyErr != nil {
		if errors.Is(applyErr, ErrNotImplemented) {
			log.Printf("Optimizer %s did not implement the optimizer contract correctly.", parameter)
			return nil, types.Result{}, applyErr
		}
		log.Printf("Error while running optimization %s: %v", parameter, applyErr)
		return batch, types.FailureResult(applyErr.Error()), nil
	}

	log.Printf("Finished running optimizer: %s. %d products were touched by the optimizer "+
		"and %d products were requested to be excluded from being run by this optimizer.",
		parameter, counts.Optimized, counts.Excluded)
	return working, types.SuccessResult(counts.Optimized), nil
}
