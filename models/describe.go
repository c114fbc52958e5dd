package models

// ExtensionCommand is a single command exposed by this extension to the host
// orchestrator plugin protocol
type ExtensionCommand struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Commands    []string `yaml:"commands,omitempty" json:"commands,omitempty"`
}

// Describe is the capability discovery document expected by the host
// orchestrator when it probes an installed extension
type Describe struct {
	Commands []ExtensionCommand `yaml:"commands" json:"commands"`
}
