package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/feedtools/feed-optimizer/internal/mining"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/schemas"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Languages accepted by the lang query parameter.
var supportedLanguages = []string{"en", "ja"}

// OptimizeResponse represents the response for /shoptimizer/v1/batch/optimize
type OptimizeResponse struct {
	OptimizedData       any                `json:"optimized-data"`
	OptimizationResults *optimizer.Results `json:"optimization-results"`
	PluginResults       *optimizer.Results `json:"plugin-results"`
	ErrorMsg            string             `json:"error-msg,omitempty"`
}

// handleOptimize runs the selected optimizers over a product batch.
// Builtin optimizers run first; plugins run over the builtin output.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := parseOptimizeParams(r.URL.RawQuery)
	if err != nil {
		s.badRequestResponse(w, "Request query string could not be parsed: "+err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		s.badRequestResponse(w, fmt.Sprintf(
			"lang query parameter must be a supported language: %v", supportedLanguages))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.badRequestResponse(w, "Request body could not be read")
		return
	}

	batch, errMsg := decodeBatch(body)
	if errMsg != "" {
		s.badRequestResponse(w, errMsg)
		return
	}

	miner := mining.NewMiner(params.Language, params.Country, s.configLoader)

	optimized, builtinResults, err := optimizer.NewRunner(s.builtinRegistry, miner).Run(batch, params)
	if err != nil {
		s.internalErrorResponse(w, err)
		return
	}
	optimized, pluginResults, err := optimizer.NewRunner(s.pluginRegistry, miner).Run(optimized, params)
	if err != nil {
		s.internalErrorResponse(w, err)
		return
	}

	s.recordRunMetrics(builtinResults)
	s.recordRunMetrics(pluginResults)
	s.metrics.BatchRequestsTotal.WithLabelValues("ok").Inc()
	s.metrics.BatchDurationSeconds.Observe(time.Since(start).Seconds())

	s.jsonResponse(w, http.StatusOK, OptimizeResponse{
		OptimizedData:       optimized,
		OptimizationResults: builtinResults,
		PluginResults:       pluginResults,
	})
}

// decodeBatch parses and validates a request body into a batch. The
// returned message is empty on success and describes the problem with
// the request otherwise.
func decodeBatch(body []byte) (*types.Batch, string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		log.Printf("Request was not valid JSON. Request: %s", body)
		return nil, "Request must be valid JSON"
	}

	entries, ok := raw["entries"]
	if !ok {
		log.Printf("Request did not contain entries key. Request: %s", body)
		return nil, "Request must contain entries as a key."
	}

	var entryList []json.RawMessage
	if err := json.Unmarshal(entries, &entryList); err != nil {
		log.Printf("Entries did not contain a list of products. %s", body)
		return nil, "Entries must contain a list of products."
	}

	if err := schemas.ValidateBatchRequest(body); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("Request failed schema validation. %v", validationErr)
			return nil, "Request did not match the batch schema: " + validationErr.Error()
		}
		return nil, "Request could not be validated"
	}

	var batch types.Batch
	if err := json.Unmarshal(body, &batch); err != nil {
		log.Printf("Request could not be decoded. %v", err)
		return nil, "Request must be valid JSON"
	}
	return &batch, ""
}

// badRequestResponse writes the error-shaped optimize response with an
// empty batch, mirroring what clients expect on malformed requests.
func (s *Server) badRequestResponse(w http.ResponseWriter, errorMsg string) {
	s.metrics.BatchRequestsTotal.WithLabelValues("bad_request").Inc()
	s.jsonResponse(w, http.StatusBadRequest, OptimizeResponse{
		OptimizedData:       map[string]any{},
		OptimizationResults: optimizer.NewResults(),
		PluginResults:       optimizer.NewResults(),
		ErrorMsg:            errorMsg,
	})
}

// internalErrorResponse reports a structurally broken optimizer. These
// are programmer errors, not data errors, so they surface as 500s.
func (s *Server) internalErrorResponse(w http.ResponseWriter, err error) {
	log.Printf("Optimizer run failed: %v", err)
	s.metrics.BatchRequestsTotal.WithLabelValues("error").Inc()
	s.jsonResponse(w, http.StatusInternalServerError, OptimizeResponse{
		OptimizedData:       map[string]any{},
		OptimizationResults: optimizer.NewResults(),
		PluginResults:       optimizer.NewResults(),
		ErrorMsg:            err.Error(),
	})
}

// recordRunMetrics records per-optimizer counters for one pipeline run.
func (s *Server) recordRunMetrics(results *optimizer.Results) {
	for _, parameter := range results.Keys() {
		result, _ := results.Get(parameter)
		s.metrics.OptimizerRunsTotal.WithLabelValues(parameter, result.Result).Inc()
		s.metrics.ProductsOptimizedTotal.WithLabelValues(parameter).Add(float64(result.NumOfProductsOptimized))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Success")); err != nil {
		log.Printf("Error writing health response: %v", err)
	}
}
