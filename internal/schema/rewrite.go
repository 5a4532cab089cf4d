package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// renameAttribute rewrites the name attribute of every start tag whose local
// element name is a key of renames. Bytes outside the rewritten attribute
// values are copied unchanged.
func renameAttribute(src string, renames map[string]string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(src))

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for {
		start := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read analysis schema: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		value, ok := renames[se.Name.Local]
		if !ok {
			continue
		}
		end := int(dec.InputOffset())
		tag, changed := setAttr(src[start:end], "name", value)
		if !changed {
			continue
		}
		b.WriteString(src[last:start])
		b.WriteString(tag)
		last = end
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

// setAttr replaces the value of attribute attr inside a single start tag,
// keeping the original quote character.
func setAttr(tag, attr, value string) (string, bool) {
	i := 1
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' && tag[i] != '/' {
		i++
	}
	for i < len(tag) {
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		nameStart := i
		for i < len(tag) && tag[i] != '=' && !isSpace(tag[i]) && tag[i] != '>' && tag[i] != '/' {
			i++
		}
		if i == nameStart {
			return tag, false
		}
		name := tag[nameStart:i]
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			return tag, false
		}
		i++
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || (tag[i] != '"' && tag[i] != '\'') {
			return tag, false
		}
		quote := tag[i]
		valueStart := i + 1
		valueEnd := strings.IndexByte(tag[valueStart:], quote)
		if valueEnd < 0 {
			return tag, false
		}
		valueEnd += valueStart
		if name == attr {
			return tag[:valueStart] + escapeAttr(value) + tag[valueEnd:], true
		}
		i = valueEnd + 1
	}
	return tag, false
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
