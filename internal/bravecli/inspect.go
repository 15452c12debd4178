package bravecli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
)

// Inspect pretty-prints and syntax-highlights the JSON payload stored at
// path, for eyeballing a saved debug_data.raw_payload capture.
func Inspect(path string, w io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("parse %s as JSON: %w", path, err)
	}

	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}

	if err := quick.Highlight(w, string(pretty)+"\n", "json", "terminal256", "dracula"); err != nil {
		fmt.Fprintln(w, string(pretty))
	}
	return nil
}
