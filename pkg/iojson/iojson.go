// iojson are utilities for writing JSON from command line and tool-call
// handlers.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape written in place of a value that failed to
// marshal.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// Pretty returns obj as indented JSON. Marshal failures are reported as an
// [Error] instead of being returned, so callers can always hand
// the result to a client.
func Pretty(obj any) string {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return jsonError("error marshaling in iojson.Pretty", err)
	}
	return string(bits)
}

func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := jsonError("error marshaling in iojson.WriteWith", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
