package render

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/samber/lo"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/leveling"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

// MarkdownContentType is the media type of the rendered document.
const MarkdownContentType = "text/markdown; charset=utf-8"

const documentTemplate = `# {{ .Title | md }}
{{ if .Truncated }}
> Level assignment stopped at level {{ .LastLevel }}. Skills on longer
> requirement chains are listed under "Unplaced skills".
{{ end }}
## Contents
{{ range .Levels }}
* Level {{ .Number }}
{{- range .Skills }}
  * [{{ .Title | md }}](#{{ .Anchor }})
{{- end }}
{{- end }}
{{- if .Unplaced }}
* Unplaced skills
{{- range .Unplaced }}
  * [{{ .Title | md }}](#{{ .Anchor }})
{{- end }}
{{- end }}
{{ range .Levels }}
## Level {{ .Number }}
{{ range .Skills }}{{ template "skill" . }}{{ end }}
{{- end }}
{{- if .Unplaced }}
## Unplaced skills
{{ range .Unplaced }}{{ template "skill" . }}{{ end }}
{{- end }}

{{- define "skill" }}
<a id="{{ .Anchor }}"></a>
### {{ .Title | md }}

**Owner:** {{ .Owner | default "_unknown_" }}

{{ plain .Description }}

#### Goals

{{ plain .Goals | default "_none_" }}

#### Links

{{ range .Links }}* [{{ .Title | md }}]({{ .URL }})
{{ else }}_none_
{{ end }}
#### Links to other skills

##### Skills required by this skill

{{ range .Required }}* {{ template "ref" . }}
{{ else }}_none_
{{ end }}
##### Skills requiring this skill

{{ range .Requiring }}* {{ template "ref" . }}
{{ else }}_none_
{{ end }}
#### Tags

{{ if .Tags }}{{ .Tags | join ", " }}{{ else }}_none_{{ end }}
{{ end }}

{{- define "ref" }}[{{ .Title | md }}](#{{ .Anchor }}) ({{ if .Placed }}level {{ .Level }}{{ else }}unplaced{{ end }}){{ end }}
`

var (
	docTemplate = template.Must(template.New("document").
			Funcs(lo.Assign(sprig.TxtFuncMap(), template.FuncMap{"plain": HTMLToText, "md": EscapeMarkdown})).
			Parse(documentTemplate))

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"[", `\[`,
	"]", `\]`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeMarkdown makes s safe to use as heading or link text.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

type documentView struct {
	Title     string
	Truncated bool
	LastLevel int
	Levels    []levelView
	Unplaced  []skillView
}

type levelView struct {
	Number int
	Skills []skillView
}

type skillView struct {
	Anchor      string
	Title       string
	Owner       string
	Description string
	Goals       string
	Links       []catalog.Link
	Required    []refView
	Requiring   []refView
	Tags        []string
}

type refView struct {
	Anchor string
	Title  string
	Level  int
	Placed bool
}

// Markdown writes the document for a prepared skill set.
func Markdown(w io.Writer, p *catalog.Prepared, tree *leveling.Tree) error {
	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, newDocumentView(p, tree)); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	out := blankRuns.ReplaceAll(bytes.TrimSpace(buf.Bytes()), []byte("\n\n"))
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func newDocumentView(p *catalog.Prepared, tree *leveling.Tree) *documentView {
	view := &documentView{
		Title:     p.SkillSet.Name,
		Truncated: tree.Truncated(),
		LastLevel: tree.Depth() - 1,
	}
	for n, ids := range tree.Levels() {
		if len(ids) == 0 {
			continue
		}
		level := levelView{Number: n}
		for _, id := range ids {
			if s, ok := p.Lookup(id); ok {
				level.Skills = append(level.Skills, newSkillView(s, p, tree))
			}
		}
		view.Levels = append(view.Levels, level)
	}
	for _, s := range p.Skills {
		if _, placed := tree.LevelOf(s.ID); !placed {
			view.Unplaced = append(view.Unplaced, newSkillView(s, p, tree))
		}
	}
	return view
}

func newSkillView(s *catalog.Skill, p *catalog.Prepared, tree *leveling.Tree) skillView {
	return skillView{
		Anchor:      s.ID.Anchor(),
		Title:       s.Title,
		Owner:       s.Owner.FullName(),
		Description: s.Description,
		Goals:       s.Goals,
		Links:       s.Links,
		Required:    refs(p.Dependencies.RequiredSkills(s.ID), p, tree),
		Requiring:   refs(p.Dependencies.RequiringSkills(s.ID), p, tree),
		Tags:        s.Tags,
	}
}

// refs resolves linked skills. Skills outside the document are left out.
func refs(ids []skillid.ID, p *catalog.Prepared, tree *leveling.Tree) []refView {
	var out []refView
	for _, id := range ids {
		s, ok := p.Lookup(id)
		if !ok {
			continue
		}
		level, placed := tree.LevelOf(id)
		out = append(out, refView{Anchor: id.Anchor(), Title: s.Title, Level: level, Placed: placed})
	}
	return out
}
