package decode

import (
	"sync"

	"github.com/CCSDSPy/ccsdspy/arrayexp"
	"github.com/CCSDSPy/ccsdspy/field"
	"github.com/CCSDSPy/ccsdspy/layout"
)

// fixedPlan is the Definition-derived, packet-size-derived work a repeated
// Fixed decode of the same stream shape can skip recomputing: array
// expansion and offset planning depend only on the field list and the
// packet's total bit width, never on decoded values.
type fixedPlan struct {
	expanded []field.Field
	ledgers  []arrayexp.Ledger
	layouts  []layout.FieldLayout
}

type fixedCacheKey struct {
	hash            uint64
	packetTotalBits int
}

var fixedCache sync.Map // fixedCacheKey -> *fixedPlan

func planFixed(def field.Definition, packetTotalBits int) (*fixedPlan, error) {
	key := fixedCacheKey{hash: def.Hash(), packetTotalBits: packetTotalBits}
	if v, ok := fixedCache.Load(key); ok {
		return v.(*fixedPlan), nil
	}

	expanded, ledgers, err := arrayexp.Expand(def.Fields)
	if err != nil {
		return nil, err
	}

	layouts, err := layout.PlanFixed(expanded, packetTotalBits)
	if err != nil {
		return nil, err
	}

	plan := &fixedPlan{expanded: expanded, ledgers: ledgers, layouts: layouts}
	fixedCache.Store(key, plan)

	return plan, nil
}

// variablePlan is the corresponding cacheable work for Variable decode: no
// packet-size dimension, since variable-length layouts never depend on a
// fixed total.
type variablePlan struct {
	expanded []field.Field
	ledgers  []arrayexp.Ledger
	plan     layout.VariablePlan
}

var variableCache sync.Map // uint64 (Definition.Hash()) -> *variablePlan

func planVariable(def field.Definition) (*variablePlan, error) {
	key := def.Hash()
	if v, ok := variableCache.Load(key); ok {
		return v.(*variablePlan), nil
	}

	expanded, ledgers, err := arrayexp.Expand(def.Fields)
	if err != nil {
		return nil, err
	}

	plan, err := layout.PrepareVariable(expanded)
	if err != nil {
		return nil, err
	}

	vp := &variablePlan{expanded: expanded, ledgers: ledgers, plan: plan}
	variableCache.Store(key, vp)

	return vp, nil
}
