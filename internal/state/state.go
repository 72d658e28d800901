package state

import (
	"encoding/json"
	"os"

	"assetctl/internal/logger"
)

// State holds cached model-description lookups keyed by the serial's
// four-character config code, so repeated report runs skip the network.
type State struct {
	Descriptions map[string]string `json:"descriptions"`
}

// Load reads the cache from a JSON file at the given path.
// If the file does not exist or cannot be read, it returns a new empty
// State. The Descriptions map is always non-nil.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{Descriptions: make(map[string]string)}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	// Defensive: the file may have held null for the map
	if st.Descriptions == nil {
		st.Descriptions = make(map[string]string)
	}
	return &st
}

// Save writes the cache to a JSON file at the given path, pretty-printed.
// Errors are logged but not propagated: a failed cache write never fails
// the report that produced it.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal lookup cache: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing lookup cache to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write lookup cache %s: %v\n", path, err)
	}
}
