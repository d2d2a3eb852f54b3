package pbxproj

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// singleLine lists the kinds Xcode writes on one line.
var singleLine = map[string]bool{
	ISABuildFile:     true,
	ISAFileReference: true,
}

// Bytes returns the serialized document.
func (m *Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes m in the OpenStep property-list dialect Xcode uses for
// project.pbxproj: records grouped into per-kind sections in kind order,
// sorted by identifier inside a section, isa first and other keys sorted.
// References carry the referenced record's comment.
func Encode(w io.Writer, m *Manifest) error {
	e := &encoder{w: bufio.NewWriter(w), m: m}

	e.line("// !$*UTF8*$!")
	e.line("{")
	e.line("\tarchiveVersion = %s;", archiveVersion)
	e.line("\tclasses = {")
	e.line("\t};")
	e.line("\tobjectVersion = %s;", objectVersion)
	e.line("\tobjects = {")

	sections := map[string][]Object{}
	for _, o := range m.Objects() {
		sections[o.ISA()] = append(sections[o.ISA()], o)
	}
	kinds := make([]string, 0, len(sections))
	for k := range sections {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		objs := sections[kind]
		sort.Slice(objs, func(i, j int) bool { return objs[i].ID() < objs[j].ID() })

		e.line("")
		e.line("/* Begin %s section */", kind)
		for _, o := range objs {
			e.object(o)
		}
		e.line("/* End %s section */", kind)
	}

	e.line("\t};")
	e.line("\trootObject = %s;", e.ref(m.RootObject))
	e.line("}")

	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

type encoder struct {
	w   *bufio.Writer
	m   *Manifest
	err error
}

func (e *encoder) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) line(format string, args ...any) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	e.write(format + "\n")
}

func (e *encoder) object(o Object) {
	props := o.Properties()
	props["isa"] = o.ISA()

	e.write("\t\t" + e.ref(o.ID()) + " = ")
	if singleLine[o.ISA()] {
		e.inlineDict(props)
	} else {
		e.dict(props, 2)
	}
	e.write(";\n")
}

// ref renders an identifier with its comment when the target is known.
func (e *encoder) ref(id ID) string {
	o, ok := e.m.Object(id)
	if !ok {
		return string(id)
	}
	if c := o.Comment(); c != "" {
		return fmt.Sprintf("%s /* %s */", id, commentText(c))
	}
	return string(id)
}

// commentText keeps names from closing the comment they are written in.
func commentText(s string) string {
	s = strings.ReplaceAll(s, "*/", "*\\/")
	return strings.ReplaceAll(s, "\n", " ")
}

func sortedKeys(d map[string]any) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		if k != "isa" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := d["isa"]; ok {
		keys = append([]string{"isa"}, keys...)
	}
	return keys
}

func (e *encoder) dict(d map[string]any, depth int) {
	indent := strings.Repeat("\t", depth)
	e.write("{\n")
	for _, k := range sortedKeys(d) {
		e.write(indent + "\t" + Quote(k) + " = ")
		e.value(d[k], depth+1)
		e.write(";\n")
	}
	e.write(indent + "}")
}

func (e *encoder) inlineDict(d map[string]any) {
	e.write("{")
	for _, k := range sortedKeys(d) {
		e.write(Quote(k) + " = ")
		e.inlineValue(d[k])
		e.write("; ")
	}
	e.write("}")
}

func (e *encoder) value(v any, depth int) {
	switch val := v.(type) {
	case map[string]any:
		e.dict(val, depth)
	case []any:
		indent := strings.Repeat("\t", depth)
		e.write("(\n")
		for _, item := range val {
			e.write(indent + "\t")
			e.value(item, depth+1)
			e.write(",\n")
		}
		e.write(indent + ")")
	default:
		e.inlineValue(v)
	}
}

func (e *encoder) inlineValue(v any) {
	switch val := v.(type) {
	case ID:
		e.write(e.ref(val))
	case string:
		e.write(Quote(val))
	case map[string]any:
		e.inlineDict(val)
	case []any:
		e.write("(")
		for _, item := range val {
			e.inlineValue(item)
			e.write(", ")
		}
		e.write(")")
	default:
		e.write(Quote(fmt.Sprint(val)))
	}
}

// Quote returns s as a plist string token: bare when it is non-empty and
// made only of letters, digits and _$/:. characters, double-quoted and
// escaped otherwise.
func Quote(s string) string {
	if s != "" && isBare(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBare(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '$' || r == '/' || r == ':' || r == '.':
		default:
			return false
		}
	}
	return true
}
