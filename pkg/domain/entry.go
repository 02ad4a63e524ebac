package domain

// Provenance sources for a configuration entry.
// The set is open: handlers may declare their own values.
const (
	SourceUser      = "user"
	SourceDiscovery = "discovery"
)

// ConfigEntry holds a committed configuration record.
// Once created its fields are never mutated; updating a configuration
// means removing the entry and running a new flow.
type ConfigEntry struct {
	// ID is the unique identifier of the entry. It is the id of the
	// flow that produced it.
	ID string `json:"id" yaml:"id"`

	// Version is the schema version the owning domain's flow handler
	// declared when the entry was created. Opaque to the engine.
	Version int `json:"version" yaml:"version"`

	// Domain identifies the subsystem the entry belongs to.
	Domain string `json:"domain" yaml:"domain"`

	// Title is the display name supplied at flow completion.
	Title string `json:"title" yaml:"title"`

	// Data is the domain-defined payload. The engine never inspects
	// its shape, it only round-trips it through the store.
	Data any `json:"data" yaml:"data"`

	// Source records how the flow was initiated (user, discovery, ...).
	Source string `json:"source" yaml:"source"`
}
