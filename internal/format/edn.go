package format

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through JSON first, so maps use the json tag names as
// keywords; only maps, vectors, strings, numbers, booleans and nil are produced.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := jsonValue(v)
	if err != nil {
		return err
	}
	var sb strings.Builder
	p := ednPrinter{sb: &sb, pretty: pretty}
	p.value(x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednPrinter struct {
	sb     *strings.Builder
	pretty bool
}

func (p ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.sb.WriteString("nil")
	case bool:
		p.sb.WriteString(strconv.FormatBool(t))
	case string:
		p.sb.WriteString(strconv.Quote(t))
	case int64:
		p.sb.WriteString(strconv.FormatInt(t, 10))
	case float64:
		p.sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		p.seq('[', ']', len(t), depth, func(i int) { p.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.seq('{', '}', len(keys), depth, func(i int) {
			p.sb.WriteString(ednKeyword(keys[i]))
			p.sb.WriteByte(' ')
			p.value(t[keys[i]], depth+1)
		})
	default:
		p.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// seq writes n elements between open and close: space separated, or one per line when pretty.
func (p ednPrinter) seq(open, close byte, n, depth int, elem func(i int)) {
	p.sb.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case p.pretty:
			p.sb.WriteByte('\n')
			p.sb.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			p.sb.WriteByte(' ')
		}
		elem(i)
	}
	if p.pretty && n > 0 {
		p.sb.WriteByte('\n')
		p.sb.WriteString(strings.Repeat("  ", depth))
	}
	p.sb.WriteByte(close)
}

// ednKeyword turns a JSON key into a keyword; characters EDN does not allow become '-'.
func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ":_"
	}
	return ":" + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("*+!-_?<>=.", r) {
			return r
		}
		return '-'
	}, s)
}
