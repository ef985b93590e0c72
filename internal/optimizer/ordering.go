package optimizer

// RunLastOptimizers names the optimizers forced to execute after all
// other selected optimizers regardless of their requested position.
// The title word order optimizer must see the final title text after
// every other title mutation has been applied.
var RunLastOptimizers = []string{"title-word-order-optimizer"}

// ComputeOrder computes the deterministic execution order for a
// selection. The caller's selection order is preserved, except that
// run-last optimizers present in the selection are moved to the end,
// keeping their relative order. Identical inputs always produce
// identical output; selected optimizers not present in the registry
// are simply skipped later, at execution time.
func ComputeOrder(selected []string, runLast []string) []string {
	last := make(map[string]bool, len(runLast))
	for _, parameter := range runLast {
		last[parameter] = true
	}

	head := make([]string, 0, len(selected))
	tail := make([]string, 0, len(runLast))
	for _, parameter := range selected {
		if last[parameter] {
			tail = append(tail, parameter)
		} else {
			head = append(head, parameter)
		}
	}
	return append(head, tail...)
}
