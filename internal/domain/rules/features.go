package rules

// FeatureSupport is one row of the native/managed/external comparison matrix.
type FeatureSupport struct {
	Feature  string `json:"feature"`
	Native   string `json:"native"`
	Managed  string `json:"managed"`
	External string `json:"external"`
}

// FeatureMatrix is the compiled-in comparison between native Snowflake
// tables, Snowflake-managed Iceberg, and externally managed Iceberg. Static
// reference data, not runtime configuration: the rule set and resolver are
// derived from it, and the renderer and MCP resource expose it verbatim.
var FeatureMatrix = []FeatureSupport{
	{Feature: "Fail-safe", Native: "Yes", Managed: "No", External: "No"},
	{Feature: "Collation", Native: "Yes", Managed: "No", External: "No"},
	{Feature: "Snowpipe Streaming", Native: "Yes", Managed: "No", External: "No"},
	{Feature: "Automatic Clustering", Native: "Yes", Managed: "Yes", External: "No"},
	{Feature: "Replication", Native: "Yes", Managed: "No", External: "No"},
	{Feature: "Time Travel", Native: "90 days", Managed: "Yes", External: "Limited"},
}
