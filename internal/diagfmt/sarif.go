package diagfmt

import (
	"encoding/json"
	"io"

	"migralint/internal/diag"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string         `json:"id"`
	ShortDescription sarifMultiText `json:"shortDescription"`
}

type sarifMultiText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMultiText  `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
func Sarif(w io.Writer, bag *diag.Bag, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{
			Driver: sarifDriver{
				Name:    meta.ToolName,
				Version: meta.ToolVersion,
			},
		},
		Results: []sarifResult{},
	}

	seenRules := make(map[diag.Code]bool)
	if bag != nil {
		for _, d := range bag.Items() {
			if !seenRules[d.Code] {
				seenRules[d.Code] = true
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
					ID:               d.Code.ID(),
					ShortDescription: sarifMultiText{Text: d.Code.Title()},
				})
			}
			res := sarifResult{
				RuleID:  d.Code.ID(),
				Level:   sarifLevel(d.Severity),
				Message: sarifMultiText{Text: d.Message},
			}
			if !d.Origin.IsZero() {
				loc := sarifLocation{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{URI: d.Origin.File},
					},
				}
				if d.Origin.Line > 0 {
					loc.PhysicalLocation.Region = &sarifRegion{
						StartLine:   d.Origin.Line,
						StartColumn: d.Origin.Col,
					}
				}
				res.Locations = append(res.Locations, loc)
			}
			run.Results = append(run.Results, res)
		}
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}
