package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema file names for the structured-extraction outputs.
const (
	ResumeSchemaFile  = "resume.schema.json"
	JobSchemaFile     = "job.schema.json"
	FitSchemaFile     = "fit.schema.json"
	SummarySchemaFile = "summary.schema.json"
)

// MustLoad returns the embedded JSON Schema document by file name,
// panicking if it is missing. Schemas ship with the binary; a missing one
// is a build defect, not a runtime condition.
func MustLoad(name string) string {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load schema %s: %v", name, err))
	}
	return string(data)
}
