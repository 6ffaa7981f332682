package supervisor

import (
	"path/filepath"
	"strings"
)

// Artifact domains. Classification is advisory: it hints at rubric
// selection and never gates which critics run.
const (
	DomainCode     = "code"
	DomainConfig   = "config"
	DomainResearch = "research"
	DomainDocs     = "docs"
	DomainOps      = "ops"
	DomainUnknown  = "unknown"
)

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".java": true,
	".go": true, ".rs": true, ".cpp": true, ".c": true,
}

var configExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".json": true,
	".toml": true, ".ini": true, ".env": true,
}

var textExtensions = map[string]bool{
	".md": true, ".rst": true, ".txt": true,
}

// researchSignals disambiguate research writing from generic docs.
// Three or more hits classify the text as research.
var researchSignals = []string{
	"abstract", "methodology", "findings", "hypothesis",
	"literature", "citation", "et al.", "study", "results",
}

const researchSignalThreshold = 3

// ClassifyDomain determines the artifact's domain from its path and,
// for ambiguous text extensions, a keyword-density heuristic.
func ClassifyDomain(artifactText, artifactPath string) string {
	ext := strings.ToLower(filepath.Ext(artifactPath))

	switch {
	case codeExtensions[ext]:
		return DomainCode
	case configExtensions[ext]:
		return DomainConfig
	case textExtensions[ext]:
		lower := strings.ToLower(artifactText)
		hits := 0
		for _, signal := range researchSignals {
			if strings.Contains(lower, signal) {
				hits++
			}
		}
		if hits >= researchSignalThreshold {
			return DomainResearch
		}
		return DomainDocs
	}

	return DomainUnknown
}
