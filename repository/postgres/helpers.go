package postgres

import "encoding/json"

// jsonValue normalizes a stored value into something the jsonb column accepts.
// Invalid JSON is stored as a JSON string so the row still round-trips.
func jsonValue(value []byte) []byte {
	if len(value) == 0 {
		return []byte("null")
	}
	if json.Valid(value) {
		return value
	}
	quoted, err := json.Marshal(string(value))
	if err != nil {
		return []byte("null")
	}
	return quoted
}
