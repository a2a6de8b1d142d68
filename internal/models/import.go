package models

// DefaultConcurrency caps in-flight issue creations.
const DefaultConcurrency = 5

// DebugFileName is written instead of creating issues in debug mode.
const DebugFileName = "debug.md"

// ImportOptions configures a single import run. Auth and Repo are consumed
// when building the tracker; the importer itself only reads Repo for logs.
type ImportOptions struct {
	// Auth is "user:secret" or a bare token.
	Auth string
	// Repo is "owner/name".
	Repo string
	// File is the source .tsv or .xlsx path.
	File string
	// Sheet selects an .xlsx sheet by name; empty means the first sheet.
	Sheet string
	// SkipHeader drops the first row of the source file.
	SkipHeader bool
	// Template is the issue template path; empty means the bundled template.
	Template string
	// Parser is a registered row parser name; empty means the default parser.
	Parser string
	// Debug renders into DebugDir/debug.md instead of creating issues.
	Debug bool
	// DebugDir defaults to the working directory.
	DebugDir string
	// Concurrency defaults to DefaultConcurrency when <= 0.
	Concurrency int
}

// ImportSummary reports what a run did.
type ImportSummary struct {
	Parsed    int
	Skipped   int
	Created   []ExistingIssue
	DebugFile string
}
