package idf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("idf syntax error")

// Parse reads every object from r into a new Workspace.
func Parse(r io.Reader) (*Workspace, error) {
	objs, err := ParseObjects(r)
	if err != nil {
		return nil, err
	}
	ws := NewWorkspace()
	ws.objects = objs
	return ws, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Workspace, error) {
	return Parse(strings.NewReader(s))
}

// LoadFile parses the file at path.
func LoadFile(path string) (*Workspace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// ParseObjects reads every object from r in file order.
func ParseObjects(r io.Reader) ([]*Object, error) {
	var (
		objs      []*Object
		cur       *Object // object being read; nil between objects
		token     strings.Builder
		startLine int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		code, comment := splitComment(sc.Text())
		lastField := -1 // index of the last field completed on this line

		for _, ch := range code {
			switch ch {
			case ',', ';':
				value := strings.TrimSpace(token.String())
				token.Reset()
				if cur == nil {
					if value == "" {
						return nil, fmt.Errorf("line %d: %w: missing object type", lineNo, ErrSyntax)
					}
					cur = &Object{Type: value}
					startLine = lineNo
				} else {
					cur.Fields = append(cur.Fields, value)
					lastField = len(cur.Fields) - 1
				}
				if ch == ';' {
					objs = append(objs, cur)
					cur = nil
				}
			default:
				token.WriteRune(ch)
			}
		}

		if lastField >= 0 && strings.HasPrefix(comment, "-") {
			o := cur
			if o == nil {
				o = objs[len(objs)-1]
			}
			o.SetFieldComment(lastField, strings.TrimSpace(comment[1:]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	rest := strings.TrimSpace(token.String())
	if cur != nil {
		return nil, fmt.Errorf("line %d: %w: object %q is not terminated with ';'", startLine, ErrSyntax, cur.Type)
	}
	if rest != "" {
		return nil, fmt.Errorf("line %d: %w: trailing text %q", lineNo, ErrSyntax, rest)
	}
	return objs, nil
}

// splitComment separates the code part of a line from the text after '!'.
// The returned comment excludes the '!' itself.
func splitComment(line string) (code, comment string) {
	if i := strings.IndexByte(line, '!'); i >= 0 {
		return line[:i], line[i+1:]
	}
	return line, ""
}
