package domain

import "context"

// MetadataCollector supplies table descriptors for a database/schema scope.
// One descriptor per distinct table, column order stable at scan time.
type MetadataCollector interface {
	Databases(ctx context.Context) ([]string, error)
	Tables(ctx context.Context, database, schema string) ([]TableDescriptor, error)
}

// Narrator turns a finished report into free-text prose. Presentation only:
// the core never depends on its output for any decision, and tests swap in a
// deterministic stub.
type Narrator interface {
	Narrate(ctx context.Context, report *AuditReport) (string, error)
}

// ConfigLoader reads the tool configuration for a directory.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// RunHistory stores past audit runs locally.
type RunHistory interface {
	Save(entry RunEntry) error
	Load() ([]RunEntry, error)
}
