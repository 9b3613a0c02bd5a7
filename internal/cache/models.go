package cache

import (
	"encoding/json"
	"fmt"
)

// Entry is the cached result of one remote query. On disk it is a two-element
// JSON array, [shortHash, unixTimestamp], always written as a complete pair.
type Entry struct {
	ShortHash string
	Timestamp float64
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.ShortHash, e.Timestamp})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if len(parts) != 2 {
		return fmt.Errorf("cache entry has %d elements, want 2", len(parts))
	}

	if err := json.Unmarshal(parts[0], &e.ShortHash); err != nil {
		return fmt.Errorf("failed to unmarshal cached hash: %w", err)
	}

	if err := json.Unmarshal(parts[1], &e.Timestamp); err != nil {
		return fmt.Errorf("failed to unmarshal cached timestamp: %w", err)
	}

	return nil
}
