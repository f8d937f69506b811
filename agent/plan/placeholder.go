package plan

import (
	"regexp"
	"strconv"

	contractx "agenthub/agent/contract"
)

// The canonical placeholder grammar is {{step:N}} and {{previous}}; the
// bracketed [STEP_N_OUTPUT] and bare PREVIOUS_OUTPUT spellings are legacy
// aliases kept for compatibility with older planner outputs.
var placeholderRe = regexp.MustCompile(
	`\{\{step:(\d+)\}\}|\{\{previous\}\}|\[STEP_(\d+)_OUTPUT\]|PREVIOUS_OUTPUT`,
)

// resolveInput substitutes placeholder tokens in a step input against the
// result log. stepIndex is the zero-based index of the step being resolved,
// so valid references are the 1-based step numbers 1..stepIndex. A token
// referencing an absent, failed, or not-strictly-earlier step stays in place
// literally: forward progress beats strictness here.
func resolveInput(input string, stepIndex int, results []contractx.StepResult) string {
	return placeholderRe.ReplaceAllStringFunc(input, func(token string) string {
		m := placeholderRe.FindStringSubmatch(token)

		ref := 0 // 1-based step number
		switch {
		case m[1] != "":
			ref, _ = strconv.Atoi(m[1])
		case m[2] != "":
			ref, _ = strconv.Atoi(m[2])
		default:
			// {{previous}} / PREVIOUS_OUTPUT mean the immediately
			// preceding step.
			ref = stepIndex
		}

		if ref < 1 || ref > stepIndex || ref > len(results) {
			return token
		}
		r := results[ref-1]
		if !r.OK() {
			return token
		}
		return r.Output
	})
}
