package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Texter is implemented by payloads with a human-readable rendering for the text format.
type Texter interface {
	Text() string
}

// Write writes v in the requested format.
//
// Supported formats:
// - text (default): v.Text() when v is a Texter, else fmt's %v
// - json
// - edn
// - yaml
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return WriteText(w, v)
	case "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "yaml", "yml":
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unknown format: %s (use: text|json|edn|yaml)", format)
	}
}

func WriteText(w io.Writer, v any) error {
	var s string
	if t, ok := v.(Texter); ok {
		s = t.Text()
	} else {
		s = fmt.Sprintf("%v", v)
	}
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteYAML goes through JSON first so field names match the json tags.
func WriteYAML(w io.Writer, v any) error {
	x, err := jsonValue(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}

// jsonValue converts v to the generic shape encoding/json would produce, keeping numbers exact.
func jsonValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	return numbersToNative(x), nil
}

func numbersToNative(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = numbersToNative(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = numbersToNative(t[k])
		}
		return t
	default:
		return v
	}
}
