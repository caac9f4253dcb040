package catalog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

const dumpIndent = "  "

// Dump writes the catalog as a stream of !provider documents in name order.
// The output loads back into an equal catalog through Parse.
func (c Catalog) Dump(w io.Writer) error {
	for _, name := range c.Names() {
		body, err := yaml.MarshalWithOptions(c[name], yaml.Indent(len(dumpIndent)))
		if err != nil {
			return fmt.Errorf("marshal provider %q: %w", name, err)
		}

		var buf bytes.Buffer

		buf.WriteString("---\n" + ProviderTag + "\n")

		for _, line := range bytes.SplitAfter(bytes.TrimRight(body, "\n"), []byte("\n")) {
			if len(bytes.TrimRight(line, "\n")) > 0 {
				buf.WriteString(dumpIndent)
			}

			buf.Write(line)
		}

		buf.WriteString("\n")

		_, err = w.Write(buf.Bytes())
		if err != nil {
			return fmt.Errorf("write provider %q: %w", name, err)
		}
	}

	return nil
}
