package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Requirement levels recognized in ReadRequirement and WriteRequirement
// fields, ordered by restrictiveness.
const (
	RequirementMandatory     = "Mandatory"
	RequirementRecommended   = "Recommended"
	RequirementIfImplemented = "IfImplemented"
	RequirementSupported     = "Supported"
)

// mergeStrategy selects how a recognized requirement field combines during
// a merge. Fields without an entry in fieldStrategies fall through to the
// structural rules (recurse on mappings, union on sequences, keep the
// destination on anything else).
type mergeStrategy int

const (
	mergeReadRequirement mergeStrategy = iota
	mergeWriteRequirement
	mergeVersionMax
	mergeVersionMin
	mergeNumericMax
	mergeNumericMin
)

var fieldStrategies = map[string]mergeStrategy{
	"ReadRequirement":  mergeReadRequirement,
	"WriteRequirement": mergeWriteRequirement,
	"MinVersion":       mergeVersionMax,
	"MaxVersion":       mergeVersionMin,
	"MinCount":         mergeNumericMax,
	"MaxCount":         mergeNumericMin,
}

// Merge folds every key of src into dst, mutating dst in place and always
// keeping the most restrictive combined requirement:
//
//   - ReadRequirement: Mandatory wins; an absent value counts as Mandatory
//     per DSP0272.
//   - WriteRequirement: the least restrictive value wins, unlike
//     ReadRequirement.
//   - MinVersion/MinCount: maximum. MaxVersion/MaxCount: minimum.
//   - Mappings recurse, sequences union preserving first-seen order.
//   - On a type conflict the destination value is kept and a warning is
//     logged; this is a recoverable condition, never an error.
//
// Keys are processed in sorted order so the result is deterministic.
func Merge(dst, src map[string]any) {
	for _, key := range SortedKeys(src) {
		incoming := src[key]
		strategy, recognized := fieldStrategies[key]

		// Requirement enums merge even when the key is missing on either
		// side: absence is itself a requirement level.
		if recognized && (strategy == mergeReadRequirement || strategy == mergeWriteRequirement) {
			if merged := mergeRequirement(strategy, dst[key], incoming); merged != nil {
				dst[key] = merged
			} else {
				delete(dst, key)
			}
			continue
		}

		existing, present := dst[key]
		if !present {
			dst[key] = incoming
			continue
		}

		if recognized {
			switch strategy {
			case mergeVersionMax:
				if CompareVersions(incoming, existing) > 0 {
					dst[key] = incoming
				}
			case mergeVersionMin:
				if CompareVersions(incoming, existing) < 0 {
					dst[key] = incoming
				}
			case mergeNumericMax:
				if numeric(incoming) > numeric(existing) {
					dst[key] = incoming
				}
			case mergeNumericMin:
				if numeric(incoming) < numeric(existing) {
					dst[key] = incoming
				}
			}
			continue
		}

		switch existingValue := existing.(type) {
		case map[string]any:
			if incomingValue, ok := incoming.(map[string]any); ok {
				Merge(existingValue, incomingValue)
				continue
			}
		case []any:
			if incomingValue, ok := incoming.([]any); ok {
				dst[key] = mergeSequences(existingValue, incomingValue)
				continue
			}
		}

		if fmt.Sprintf("%T", existing) != fmt.Sprintf("%T", incoming) {
			slog.Warn("type conflict during merge, keeping existing value",
				"key", key,
				"existing", fmt.Sprintf("%T", existing),
				"incoming", fmt.Sprintf("%T", incoming))
		}
		// Same scalar type: first writer wins, silently.
	}
}

// requirementRank orders requirement levels by restrictiveness. An absent
// value ranks as Mandatory per DSP0272; unrecognized values rank below
// Supported.
func requirementRank(v any) int {
	if v == nil {
		return 4
	}
	switch v {
	case RequirementMandatory:
		return 4
	case RequirementRecommended:
		return 3
	case RequirementIfImplemented:
		return 2
	case RequirementSupported:
		return 1
	default:
		return 0
	}
}

func mergeRequirement(strategy mergeStrategy, existing, incoming any) any {
	if strategy == mergeReadRequirement {
		// Any input at the Mandatory rank wins, including absence.
		if requirementRank(existing) == 4 {
			return existing
		}
		if requirementRank(incoming) == 4 {
			return incoming
		}
		return existing
	}
	// WriteRequirement: the least restrictive value wins, ties keep the
	// destination.
	if requirementRank(incoming) < requirementRank(existing) {
		return incoming
	}
	return existing
}

// mergeSequences unions two sequences, removing duplicates while keeping
// first-seen order. Equality for nested structures uses a canonical
// sorted-key JSON serialization, so mappings compare order-independently.
func mergeSequences(existing, incoming []any) []any {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]any, 0, len(existing)+len(incoming))
	for _, item := range existing {
		key := canonicalKey(item)
		if !seen[key] {
			seen[key] = true
			merged = append(merged, item)
		}
	}
	for _, item := range incoming {
		key := canonicalKey(item)
		if !seen[key] {
			seen[key] = true
			merged = append(merged, item)
		}
	}
	return merged
}

func canonicalKey(item any) string {
	// encoding/json sorts map keys, which is exactly the canonical form
	// needed for structural equality.
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("%v", item)
	}
	return string(data)
}

func numeric(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, _ := x.Float64()
		return f
	default:
		return 0
	}
}
