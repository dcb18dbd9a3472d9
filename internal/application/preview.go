package application

import (
	"github.com/formforge/formforge/internal/domain/schema"
	"github.com/formforge/formforge/internal/eval"
)

// PreviewService runs the preview surface's per-change work: seeding
// initial values, recomputing derived fields and validating. It is
// stateless; the value snapshot is owned by the caller.
type PreviewService struct {
	draft *DraftService
}

func NewPreviewService(draft *DraftService) *PreviewService {
	return &PreviewService{draft: draft}
}

// InitialValues seeds the value map for the current draft's fields.
func (s *PreviewService) InitialValues() (map[string]any, error) {
	d, err := s.draft.Draft()
	if err != nil {
		return nil, err
	}
	return schema.InitialValues(d.Fields), nil
}

// Recompute runs one derivation pass over the draft's fields and returns
// the merged value map. Every derived field is evaluated against the same
// pre-pass snapshot, so a derived field referencing another derived field
// sees that field's value from the previous pass, not this one. There is
// no dependency ordering and no cycle detection; a cycle simply converges
// on whatever the previous pass produced.
func (s *PreviewService) Recompute(values map[string]any) (map[string]any, error) {
	d, err := s.draft.Draft()
	if err != nil {
		return nil, err
	}
	return RecomputeDerived(d.Fields, values), nil
}

// Validate checks the given values against the draft's fields.
func (s *PreviewService) Validate(values map[string]any) (map[string]string, error) {
	d, err := s.draft.Draft()
	if err != nil {
		return nil, err
	}
	return schema.ValidateAll(d.Fields, values), nil
}

// Evaluate gives direct access to the formula evaluator, bypassing the
// draft. The field editor uses it to test a formula while writing it.
func (s *PreviewService) Evaluate(formula string, values map[string]any) eval.Result {
	return eval.Evaluate(formula, values)
}

// RecomputeDerived evaluates every derived field against the unmodified
// input snapshot and returns a new map with the results merged in. A
// failed evaluation stores an error marker string in place of a value; no
// other field is affected.
func RecomputeDerived(fields []schema.Field, values map[string]any) map[string]any {
	merged := make(map[string]any, len(values)+len(fields))
	for k, v := range values {
		merged[k] = v
	}
	for _, f := range fields {
		if !f.Derived {
			continue
		}
		res := eval.Evaluate(f.Formula, values)
		if res.OK {
			merged[f.ID] = res.Value
		} else {
			merged[f.ID] = "Err: " + res.Err
		}
	}
	return merged
}
