package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputHTML = "html"
	outputJSON = "json"
	outputYAML = "yaml"
)

func checkOutput(output string, htmlAllowed bool) error {
	switch output {
	case outputJSON, outputYAML:
		return nil
	case outputHTML:
		if htmlAllowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q", output)
}

// render writes v as indented JSON or as YAML. YAML goes through a JSON
// round trip so json tags and raw chart payloads are honoured.
func render(w io.Writer, output string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if output == outputJSON {
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
