package idf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// commentColumn is where "!-" field comments start, counted from the line start.
const commentColumn = 42

// Write renders objects in definition-format text, one blank line between
// objects.
func Write(w io.Writer, objs []*Object) error {
	bw := bufio.NewWriter(w)
	for i, o := range objs {
		if i > 0 {
			bw.WriteString("\n")
		}
		writeObject(bw, o)
	}
	return bw.Flush()
}

func writeObject(w *bufio.Writer, o *Object) {
	if len(o.Fields) == 0 {
		fmt.Fprintf(w, "%s;\n", o.Type)
		return
	}
	fmt.Fprintf(w, "%s,\n", o.Type)
	last := len(o.Fields) - 1
	for i, v := range o.Fields {
		sep := ","
		if i == last {
			sep = ";"
		}
		line := "  " + v + sep
		if c := o.FieldComment(i); c != "" {
			pad := commentColumn - len(line)
			if pad < 1 {
				pad = 1
			}
			line += strings.Repeat(" ", pad) + "!- " + c
		}
		w.WriteString(line)
		w.WriteString("\n")
	}
}

// SaveFile writes the workspace to path, creating the parent directory.
func SaveFile(ws *Workspace, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ws.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
