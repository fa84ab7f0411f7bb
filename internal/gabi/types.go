package gabi

import (
	"bytes"
	"encoding/json"
)

// HealthResponse is the body of GET /healthcheck.
type HealthResponse struct {
	Status string `json:"status"`
}

// QueryRequest is the body POSTed to /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the service's answer to a query submission. Result is kept
// as raw JSON so it can be re-emitted verbatim in JSON output mode; a
// non-empty Error means Result must be ignored.
type QueryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// HasRows reports whether the response carries a usable result payload.
func (r *QueryResponse) HasRows() bool {
	if r == nil || len(r.Result) == 0 {
		return false
	}
	return !bytes.Equal(bytes.TrimSpace(r.Result), []byte("null"))
}

// Rows decodes the result payload into rows of cells. Numbers are decoded as
// json.Number so values round-trip without float formatting artifacts.
func (r *QueryResponse) Rows() ([][]any, error) {
	if !r.HasRows() {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Result))
	dec.UseNumber()
	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
