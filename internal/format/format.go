// Package format reduces a batch of hook results into a single decision.
// All functions are pure; a nil decision means no objection.
package format

import (
	"fmt"
	"strings"

	"github.com/tmeadows/hookbridge/internal/core"
)

// PreToolUse aggregates results for a pre-action event. Any non-skipped
// failure denies the pending action.
func PreToolUse(results []core.HookResult) *core.Decision {
	return decide(results, core.VerdictDeny)
}

// PostToolUse aggregates results for a post-action event. The action already
// happened, so failures surface as an advisory message rather than a block.
func PostToolUse(results []core.HookResult) *core.Decision {
	return decide(results, core.VerdictAdvise)
}

// Terminal aggregates results for an end-of-turn or session event. Any
// non-skipped failure blocks, forcing the agent to address the issues.
func Terminal(results []core.HookResult) *core.Decision {
	return decide(results, core.VerdictBlock)
}

func decide(results []core.HookResult, verdict core.Verdict) *core.Decision {
	blocks := failureBlocks(results)
	if len(blocks) == 0 {
		// Either nothing failed, or every failure was silent. A failure
		// message with no content is worse than none, so stay quiet.
		return nil
	}
	return &core.Decision{
		Verdict: verdict,
		Reason:  strings.Join(blocks, "\n\n"),
	}
}

// failureBlocks renders one message block per failing hook that produced
// output. Silent failures contribute nothing.
func failureBlocks(results []core.HookResult) []string {
	var blocks []string
	for _, r := range results {
		if !r.Failed() {
			continue
		}
		body := strings.TrimSpace(r.Stdout)
		if body == "" {
			body = strings.TrimSpace(r.Stderr)
		}
		if body == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[%s] failed:\n%s", r.Hook.ID(), body))
	}
	return blocks
}
