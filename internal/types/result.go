package types

// Result outcomes reported for each optimizer run.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Result summarizes one optimizer's run over one batch.
type Result struct {
	Result                 string `json:"result"`
	NumOfProductsOptimized int    `json:"num_of_products_optimized"`
	ErrorMsg               string `json:"error_msg"`
}

// Counts reports how many products an optimizer touched and how many
// asked to be skipped via their exclusion list.
type Counts struct {
	Optimized int
	Excluded  int
}

// SuccessResult builds the result recorded for an optimizer that
// completed normally.
func SuccessResult(numOptimized int) Result {
	return Result{Result: ResultSuccess, NumOfProductsOptimized: numOptimized}
}

// FailureResult builds the result recorded for an optimizer whose run
// was aborted. The optimized count is always zero on failure.
func FailureResult(errMsg string) Result {
	return Result{Result: ResultFailure, ErrorMsg: errMsg}
}
