package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
	"github.com/agentflare-ai/coffee-docmd/internal/resolve"
)

const (
	formatRST      = "rst"
	formatMarkdown = "markdown"

	rstIndent = "   "
)

type resolvedObject struct {
	name coffeedoc.Name
	obj  coffeedoc.Object
	mod  *coffeedoc.Module
}

type renderer struct {
	format   string
	members  bool
	showDeps bool
}

func (r *renderer) render(w io.Writer, target resolvedObject) {
	if r.format == formatMarkdown {
		r.renderMarkdown(w, target)
		return
	}
	r.renderRST(w, target, "")
}

// renderRST emits a directive in the coffee domain. Module content is not
// indented; everything else nests its content and members one level.
func (r *renderer) renderRST(w io.Writer, t resolvedObject, indent string) {
	fmt.Fprintf(w, "%s.. coffee:%s:: %s%s\n", indent, t.obj.Kind(), t.name, signature(t.obj))
	content := indent + rstIndent
	if t.obj.Kind() == coffeedoc.KindModule {
		content = indent
	}
	if parent := parentFQN(t); parent != "" {
		fmt.Fprintf(w, "%s:parent: %s\n", indent+rstIndent, parent)
	}
	fmt.Fprintln(w)
	if doc := docText(t.obj.Doc()); doc != "" {
		writeIndented(w, content, doc)
		fmt.Fprintln(w)
	}
	if r.showDeps {
		if mod, ok := t.obj.(*coffeedoc.Module); ok && mod.Deps != nil && mod.Deps.Len() > 0 {
			fmt.Fprintf(w, "%s*Dependencies:*\n\n", content)
			for pair := mod.Deps.Oldest(); pair != nil; pair = pair.Next() {
				fmt.Fprintf(w, "%s  * ``%s = require \"%s\"``\n", content, pair.Key, pair.Value)
			}
			fmt.Fprintln(w)
		}
	}
	if !r.members {
		return
	}
	for _, m := range resolve.Members(t.obj, t.name) {
		r.renderRST(w, resolvedObject{name: m.Name, obj: m.Object, mod: t.mod}, content)
	}
}

func (r *renderer) renderMarkdown(w io.Writer, t resolvedObject) {
	switch obj := t.obj.(type) {
	case *coffeedoc.Module:
		fmt.Fprintf(w, "# module %s\n\n", t.name.Module)
		if doc := docText(obj.Docstring); doc != "" {
			fmt.Fprintln(w, doc)
			fmt.Fprintln(w)
		}
		if r.showDeps && obj.Deps != nil && obj.Deps.Len() > 0 {
			fmt.Fprintf(w, "### Dependencies\n\n")
			for pair := obj.Deps.Oldest(); pair != nil; pair = pair.Next() {
				fmt.Fprintf(w, "- `%s = require \"%s\"`\n", pair.Key, pair.Value)
			}
			fmt.Fprintln(w)
		}
		if !r.members {
			r.renderMarkdownSummary(w, t)
		}
	case *coffeedoc.Class:
		fmt.Fprintf(w, "## class %s\n\n", t.name.Path)
		if parent := parentFQN(t); parent != "" {
			fmt.Fprintf(w, "Extends `%s`.\n\n", parent)
		}
		if doc := docText(obj.Docstring); doc != "" {
			fmt.Fprintln(w, doc)
			fmt.Fprintln(w)
		}
	case coffeedoc.Callable:
		heading := "####"
		if obj.Kind() == coffeedoc.KindFunction {
			heading = "###"
		}
		fmt.Fprintf(w, "%s %s\n\n", heading, t.name.Path)
		fmt.Fprintf(w, "```coffee\n%s%s\n```\n\n", callPrefix(obj), obj.Function.Name+obj.Signature())
		if doc := docText(obj.Docstring); doc != "" {
			fmt.Fprintln(w, doc)
			fmt.Fprintln(w)
		}
	}
	if !r.members {
		return
	}
	for _, m := range resolve.Members(t.obj, t.name) {
		r.renderMarkdown(w, resolvedObject{name: m.Name, obj: m.Object, mod: t.mod})
	}
}

func (r *renderer) renderMarkdownSummary(w io.Writer, t resolvedObject) {
	members := resolve.Members(t.obj, t.name)
	if len(members) == 0 {
		return
	}
	for _, m := range members {
		title := m.Object.Kind().String() + " " + m.Name.Path.String()
		if fn, ok := m.Object.(coffeedoc.Callable); ok {
			title = m.Name.Path.String() + fn.Signature()
		}
		fmt.Fprintln(w, bulletLine(title, summaryText(m.Object.Doc())))
	}
	fmt.Fprintln(w)
}

func callPrefix(fn coffeedoc.Callable) string {
	if fn.Kind() == coffeedoc.KindStaticMethod {
		return "@"
	}
	return ""
}

func signature(obj coffeedoc.Object) string {
	if fn, ok := obj.(coffeedoc.Callable); ok {
		return fn.Signature()
	}
	return ""
}

// parentFQN returns the qualified parent class of a class target, or "".
func parentFQN(t resolvedObject) string {
	cls, ok := t.obj.(*coffeedoc.Class)
	if !ok || cls.Parent == "" {
		return ""
	}
	return resolve.ParentFQN(t.mod, cls.Parent)
}

func writeIndented(w io.Writer, indent, text string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

func docText(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	return dedent(trimmed)
}

func dedent(src string) string {
	lines := strings.Split(src, "\n")
	minIndent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return src
	}
	for i, line := range lines[1:] {
		if len(line) >= minIndent {
			lines[i+1] = line[minIndent:]
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}

func summaryText(text string) string {
	md := docText(text)
	if md == "" {
		return ""
	}
	md = strings.ReplaceAll(md, "\n", " ")
	if idx := strings.Index(md, ". "); idx >= 0 {
		return strings.TrimSpace(md[:idx+1])
	}
	return strings.TrimSpace(md)
}

func bulletLine(signature, summary string) string {
	if summary == "" {
		return fmt.Sprintf("- `%s`", signature)
	}
	return fmt.Sprintf("- `%s` — %s", signature, summary)
}
