package host

import (
	"github.com/itchyny/gojq"
)

// fileQueries probes tool input for triggering file paths. The field carrying
// the path varies by host and tool, so candidates are tried in order and the
// first query yielding any path wins.
var fileQueries = mustParseQueries(
	".file_path",
	".path",
	".notebook_path",
	".target",
	".destination",
	".edits[]?.file_path?",
)

func mustParseQueries(exprs ...string) []*gojq.Query {
	queries := make([]*gojq.Query, 0, len(exprs))
	for _, expr := range exprs {
		q, err := gojq.Parse(expr)
		if err != nil {
			panic("host: bad file query " + expr + ": " + err.Error())
		}
		queries = append(queries, q)
	}
	return queries
}

// extractFiles runs the candidate queries against a decoded tool input
// object. Query evaluation errors are treated as "no value".
func extractFiles(toolInput map[string]any) []string {
	if toolInput == nil {
		return nil
	}
	for _, q := range fileQueries {
		var files []string
		seen := make(map[string]bool)
		iter := q.Run(toolInput)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if _, isErr := v.(error); isErr {
				continue
			}
			if s, ok := v.(string); ok && s != "" && !seen[s] {
				seen[s] = true
				files = append(files, s)
			}
		}
		if len(files) > 0 {
			return files
		}
	}
	return nil
}
