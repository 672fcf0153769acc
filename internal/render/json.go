package render

import (
	"encoding/json"
	"fmt"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// jsonDocument is the top-level JSON shape: one object with "repo" and
// "files" keys, files in traversal order.
type jsonDocument struct {
	Repo  digest.RepoSummary  `json:"repo"`
	Files []digest.FileRecord `json:"files"`
}

func renderJSON(summary digest.RepoSummary, records []digest.FileRecord) ([]byte, error) {
	doc := jsonDocument{
		Repo:  summary,
		Files: records,
	}
	if doc.Files == nil {
		doc.Files = []digest.FileRecord{}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(out, '\n'), nil
}
