package jsdoc

import (
	"strings"
)

// Format renders doc as plain text: the description followed by one line
// per block tag.
func Format(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	var lines []string
	if body := formatBody(doc.Body); body != "" {
		lines = append(lines, body)
	}
	for _, tag := range doc.Tags {
		if s := formatBlockTag(tag); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// Summary returns the first sentence of the description.
func Summary(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	body := formatBody(doc.Body)
	if para, _, found := strings.Cut(body, "\n\n"); found {
		body = para
	}
	body = strings.Join(strings.Fields(body), " ")
	if i := strings.Index(body, ". "); i >= 0 {
		return body[:i+1]
	}
	return body
}

func formatBody(nodes []Node) string {
	return normalizeWhitespace(formatInline(nodes))
}

func formatInline(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Code:
			sb.WriteString("`" + n.Content + "`")
		case Link:
			if n.Label != "" {
				sb.WriteString(n.Label)
			} else {
				sb.WriteString(n.Reference)
			}
		case UnknownInlineTag:
			sb.WriteString(n.Content)
		}
	}
	return sb.String()
}

// normalizeWhitespace trims every line and collapses runs of blank lines.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func formatBlockTag(tag Node) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	typ := func(t string) string {
		if t == "" {
			return ""
		}
		return "{" + t + "}"
	}
	desc := func(nodes []Node) string {
		return strings.Join(strings.Fields(formatInline(nodes)), " ")
	}

	switch t := tag.(type) {
	case Param:
		add("@param")
		add(typ(t.Type))
		name := t.Name
		if t.Optional {
			if t.Default != "" {
				name += "=" + t.Default
			}
			name = "[" + name + "]"
		}
		add(name)
		add(desc(t.Description))
	case Returns:
		add("@returns")
		add(typ(t.Type))
		add(desc(t.Description))
	case Throws:
		add("@throws")
		add(typ(t.Type))
		add(desc(t.Description))
	case TypeTag:
		add("@type")
		add(typ(t.Type))
	case Example:
		if t.Code == "" {
			return "@example"
		}
		return "@example\n" + t.Code
	case See:
		add("@see")
		add(t.Reference)
	case Since:
		add("@since")
		add(t.Version)
	case Deprecated:
		add("@deprecated")
		add(desc(t.Description))
	case UnknownBlockTag:
		add("@" + t.Name)
		add(desc(t.Content))
	}
	return strings.Join(parts, " ")
}
