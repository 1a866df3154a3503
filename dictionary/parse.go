package dictionary

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

var (
	columnPattern = regexp.MustCompile(`_column\(\s*([^)]*?)\s*\)`)

	// %[-]<width>[.<decimals>]<code>, optionally with a trailing "c" for
	// comma formats.
	formatPattern = regexp.MustCompile(`^%-?(\d+)(?:\.(\d+))?([a-zA-Z])c?$`)

	storageTypes = map[string]fwtable.Type{
		"byte":    fwtable.Int64,
		"int":     fwtable.Int64,
		"long":    fwtable.Int64,
		"float":   fwtable.Float64,
		"double":  fwtable.Float64,
		"numeric": fwtable.Float64,
	}
)

// ParseFile reads the dictionary at path.  The Layout is named after the
// file, without its extension.
func ParseFile(path string) (*fwtable.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open dictionary %v", path)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

func Parse(r io.Reader, name string) (*fwtable.Layout, error) {
	l := &fwtable.Layout{Name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		match := columnPattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}
		column, reason := parseField(line, match)
		if reason != "" {
			return nil, &fwtable.LayoutParseError{
				Line:   lineNum,
				Text:   line,
				Reason: reason,
			}
		}
		l.Columns = append(l.Columns, column)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read dictionary %v", name)
	}
	if len(l.Columns) == 0 {
		return nil, &fwtable.LayoutParseError{
			Reason: "no _column declarations in " + name,
		}
	}
	return l, nil
}

// parseField returns a non-empty reason when the declaration is malformed.
// match holds the submatch indexes of columnPattern within line.
func parseField(line string, match []int) (*fwtable.Column, string) {
	start, err := strconv.Atoi(line[match[2]:match[3]])
	if err != nil {
		return nil, "bad _column start " + strconv.Quote(line[match[2]:match[3]])
	}
	if start < 1 {
		return nil, "_column start must be at least 1"
	}
	body, label := splitLabel(line[match[1]:])
	tokens := strings.Fields(body)

	// Tokens are [type] name format; when the storage type is omitted the
	// format code decides.
	var storage, name, format string
	switch len(tokens) {
	case 2:
		name, format = tokens[0], tokens[1]
	case 3:
		storage, name, format = tokens[0], tokens[1], tokens[2]
	default:
		return nil, "expected [type] name %format"
	}
	if !validName(name) {
		return nil, "bad field name " + strconv.Quote(name)
	}
	fm := formatPattern.FindStringSubmatch(format)
	if fm == nil {
		return nil, "bad format " + strconv.Quote(format)
	}
	width, err := strconv.Atoi(fm[1])
	if err != nil || width <= 0 {
		return nil, "format width must be positive"
	}
	type_, reason := resolveType(storage, fm[2], strings.ToLower(fm[3]))
	if reason != "" {
		return nil, reason
	}
	return &fwtable.Column{
		Name:   strings.ToLower(name),
		Start:  start - 1,
		Width:  width,
		Type:   type_,
		Format: format,
		Label:  label,
	}, ""
}

// resolveType prefers the storage type; the format code only decides when
// the storage type was omitted.
func resolveType(storage, decimals, code string) (fwtable.Type, string) {
	switch {
	case strings.HasPrefix(storage, "str"):
		return fwtable.String, ""
	case storage != "":
		type_, ok := storageTypes[storage]
		if !ok {
			return fwtable.UnknownType, "unknown storage type " + strconv.Quote(storage)
		}
		return type_, ""
	}
	switch code {
	case "s":
		return fwtable.String, ""
	case "f", "g", "e":
		if decimals != "" && decimals != "0" {
			return fwtable.Float64, ""
		}
		return fwtable.Int64, ""
	case "d":
		return fwtable.Int64, ""
	default:
		return fwtable.UnknownType, "unknown format code " + strconv.Quote(code)
	}
}

// splitLabel separates the trailing quoted description from the rest of the
// declaration.
func splitLabel(s string) (string, string) {
	i := strings.IndexByte(s, '"')
	if i < 0 {
		return s, ""
	}
	label := strings.TrimSpace(s[i+1:])
	label = strings.TrimSuffix(label, `"`)
	return s[:i], label
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
