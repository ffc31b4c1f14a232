package diagnostics

import (
	"fmt"
	"strings"
)

// Format renders one Finding as "file:line:col" plus a source-line caret,
// patterned directly on the teacher's CompilerError.Format.
func (f Finding) Format(source, file string, color bool) string {
	var sb strings.Builder

	pos := f.Node.Pos()
	if file != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", file, pos.Line, pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", pos.Line, pos.Column))
	}

	if line := sourceLine(source, pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(f.Reason)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders every finding, numbered, the way the teacher's
// FormatErrors does for multiple CompilerErrors.
func FormatAll(findings []Finding, source, file string, color bool) string {
	if len(findings) == 0 {
		return ""
	}
	if len(findings) == 1 {
		return findings[0].Format(source, file, color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("narrowing failed with %d finding(s):\n\n", len(findings)))
	for i, f := range findings {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(findings)))
		sb.WriteString(f.Format(source, file, color))
		if i < len(findings)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
