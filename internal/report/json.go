package report

import (
	"context"
	"encoding/json"
	"io"

	"github.com/hamed0406/rpcmon/internal/domain"
)

// JSON writes the whole run as one indented document once it finishes.
type JSON struct {
	w io.Writer
}

func NewJSON(w io.Writer) *JSON { return &JSON{w: w} }

func (j *JSON) Endpoint(domain.EndpointReport) {}

func (j *JSON) Summary(_ context.Context, run domain.RunReport) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
