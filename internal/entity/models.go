package entity

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// UnknownKey is the sentinel surrogate id assigned when a parent or foreign
// dimension row cannot be resolved. One sentinel for every dimension; the
// warehouse seeds an "Unknown" row with this id in each dim_* table.
const UnknownKey int64 = 9999

// RunParams is everything a batch needs from the caller. The pipeline reads
// no ambient state: the uploaded file, the source layout and the run
// timestamp all arrive here.
type RunParams struct {
	File         []byte    `validate:"required"`
	SourceLayout string    `validate:"required,oneof=shopee tokopedia tiktok"`
	RunAt        time.Time `validate:"required"`
}

// StageResult reports one pipeline stage to the caller: how many rows the
// stage affected and how many it had to drop or leave unresolved.
type StageResult struct {
	Stage      string `json:"stage"`
	Rows       int64  `json:"rows"`
	Dropped    int    `json:"dropped,omitempty"`
	Unresolved int    `json:"unresolved,omitempty"`
	Message    string `json:"message"`
}

// Report is the batch outcome surfaced to the UI. The batch either fully
// landed (Status "loaded") or fully failed (Status "failed"), never a
// silently partial load.
type Report struct {
	RunID  string        `json:"run_id"`
	Source string        `json:"source"`
	RunAt  time.Time     `json:"run_at"`
	Status string        `json:"status"`
	Stages []StageResult `json:"stages"`
	Error  string        `json:"error,omitempty"`
}
