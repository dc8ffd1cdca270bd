package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/leveling"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

func owner() *catalog.Owner {
	return &catalog.Owner{UID: 612, FirstName: "Ada", LastName: "Lovelace"}
}

// prepareFixture builds a small skill set:
//
//	1 Go basics     <- 2 HTTP servers <- 3 gRPC
//	4 Orphan        (no owner)
//	5 Chicken <-> 6 Egg
func prepareFixture(t *testing.T) *catalog.Prepared {
	t.Helper()
	src := catalog.NewMemorySource()
	src.AddSkill(&catalog.Skill{
		ID:          1,
		Title:       "Go basics",
		Description: "<p>Syntax and <b>tooling</b>.</p>",
		Goals:       "<ul><li>Write code</li><li>Run tests</li></ul>",
		Owner:       owner(),
		Links:       []catalog.Link{{Title: "Tour", URL: "https://go.dev/tour"}},
		Tags:        []string{"language", "core"},
	})
	src.AddSkill(&catalog.Skill{ID: 2, Title: "HTTP servers", Owner: owner(), Prerequisites: []skillid.ID{1}})
	src.AddSkill(&catalog.Skill{ID: 3, Title: "gRPC", Owner: owner(), Prerequisites: []skillid.ID{2}})
	src.AddSkill(&catalog.Skill{ID: 4, Title: "Orphan", Description: "<p>Alone</p>"})
	src.AddSkill(&catalog.Skill{ID: 5, Title: "Chicken", Owner: owner(), Prerequisites: []skillid.ID{6}})
	src.AddSkill(&catalog.Skill{ID: 6, Title: "Egg", Owner: owner(), Prerequisites: []skillid.ID{5}})
	src.AddSkillSet(&catalog.SkillSet{
		ID:     1,
		Name:   "Backend",
		Skills: []catalog.SkillSummary{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}},
	})

	p, err := catalog.Prepare(context.Background(), src, 1, catalog.PrepareOptions{})
	require.NoError(t, err)
	return p
}

func TestHTMLToText(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "  \n ", want: ""},
		{name: "plain text", in: "  just text ", want: "just text"},
		{name: "inline markup", in: "<p>Syntax and <b>tooling</b>.</p>", want: "Syntax and tooling."},
		{name: "paragraphs", in: "<p>One</p><p>Two</p>", want: "One\n\nTwo"},
		{name: "line break", in: "a<br>b", want: "a\nb"},
		{name: "list", in: "<ul><li>Write code</li><li>Run <i>tests</i></li></ul>", want: "- Write code\n- Run tests"},
		{name: "entities", in: "<p>R&amp;D &lt;3</p>", want: "R&D <3"},
		{name: "script dropped", in: "<p>ok</p><script>alert(1)</script>", want: "ok"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTMLToText(tc.in))
		})
	}
}

func TestMarkdown(t *testing.T) {
	p := prepareFixture(t)
	tree := leveling.New(p.IDs(), p.Dependencies)

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, p, tree))
	doc := buf.String()

	assert.True(t, strings.HasPrefix(doc, "# Backend\n"))
	assert.NotContains(t, doc, "\n\n\n")
	assert.NotContains(t, doc, "Level assignment stopped")

	assert.Contains(t, doc, "* Level 0\n  * [Go basics](#skill_1)\n  * [Orphan](#skill_4)\n")
	assert.Contains(t, doc, "<a id=\"skill_1\"></a>\n### Go basics\n")
	assert.Contains(t, doc, "**Owner:** Ada Lovelace")
	assert.Contains(t, doc, "**Owner:** _unknown_")
	assert.Contains(t, doc, "Syntax and tooling.")
	assert.Contains(t, doc, "#### Goals\n\n- Write code\n- Run tests\n")
	assert.Contains(t, doc, "* [Tour](https://go.dev/tour)")
	assert.Contains(t, doc, "#### Tags\n\nlanguage, core\n")
	assert.Contains(t, doc, "* [HTTP servers](#skill_2) (level 1)")
	assert.Contains(t, doc, "* [Go basics](#skill_1) (level 0)")
	assert.Contains(t, doc, "* [Egg](#skill_6) (unplaced)")

	level0 := strings.Index(doc, "## Level 0\n")
	level1 := strings.Index(doc, "## Level 1\n")
	level2 := strings.Index(doc, "## Level 2\n")
	unplaced := strings.Index(doc, "## Unplaced skills\n")
	require.NotEqual(t, -1, level0)
	assert.Less(t, level0, level1)
	assert.Less(t, level1, level2)
	assert.Less(t, level2, unplaced)
	assert.NotContains(t, doc, "## Level 3")

	grpc := doc[strings.Index(doc, "### gRPC"):]
	grpc = grpc[:strings.Index(grpc, "#### Tags")]
	assert.Contains(t, grpc, "##### Skills requiring this skill\n\n_none_\n")
	assert.Contains(t, grpc, "#### Links\n\n_none_\n")
}

func TestEscapeMarkdown(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Go basics", want: "Go basics"},
		{in: "Arrays [advanced]", want: `Arrays \[advanced\]`},
		{in: "C# & <generics>", want: `C\# &amp; &lt;generics&gt;`},
		{in: "snake_case *bold*", want: `snake\_case \*bold\*`},
		{in: `a\b`, want: `a\\b`},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeMarkdown(tc.in))
		})
	}
}

func TestMarkdown_EscapesTitles(t *testing.T) {
	src := catalog.NewMemorySource()
	src.AddSkill(&catalog.Skill{ID: 1, Title: "Arrays [advanced]", Owner: owner()})
	src.AddSkill(&catalog.Skill{ID: 2, Title: "C# <generics>", Owner: owner(), Prerequisites: []skillid.ID{1}})
	src.AddSkillSet(&catalog.SkillSet{ID: 1, Name: "Lang #1", Skills: []catalog.SkillSummary{{ID: 1}, {ID: 2}}})
	p, err := catalog.Prepare(context.Background(), src, 1, catalog.PrepareOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, p, leveling.New(p.IDs(), p.Dependencies)))
	doc := buf.String()

	assert.True(t, strings.HasPrefix(doc, "# Lang \\#1\n"))
	assert.Contains(t, doc, "  * [Arrays \\[advanced\\]](#skill_1)\n")
	assert.Contains(t, doc, "### C\\# &lt;generics&gt;\n")
	assert.Contains(t, doc, "* [Arrays \\[advanced\\]](#skill_1) (level 0)")
	assert.NotContains(t, doc, "<generics>")
}

func TestMarkdown_Truncated(t *testing.T) {
	p := prepareFixture(t)
	tree, err := leveling.Compute(p.IDs(), p.Dependencies, leveling.WithMaxLevel(1))
	require.NoError(t, err)
	require.True(t, tree.Truncated())

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, p, tree))
	doc := buf.String()

	assert.Contains(t, doc, "Level assignment stopped at level 1.")
	unplaced := doc[strings.Index(doc, "## Unplaced skills"):]
	assert.Contains(t, unplaced, "### gRPC")
	assert.Contains(t, doc, "* [gRPC](#skill_3) (unplaced)")
}

func TestSummary(t *testing.T) {
	p := prepareFixture(t)
	tree := leveling.New(p.IDs(), p.Dependencies)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, p, tree))
	out := buf.String()

	assert.Contains(t, out, "Backend (6 skills, 3 levels)")
	assert.Contains(t, out, "Level 0")
	assert.Contains(t, out, "Go basics")
	assert.Contains(t, out, "Unplaced")
	assert.Contains(t, out, "Chicken")
	assert.NotContains(t, out, "warning:")

	assert.Less(t, strings.Index(out, "Level 1"), strings.Index(out, "HTTP servers"))
	assert.Less(t, strings.Index(out, "HTTP servers"), strings.Index(out, "Level 2"))
}

func TestSummary_Truncated(t *testing.T) {
	p := prepareFixture(t)
	tree, err := leveling.Compute(p.IDs(), p.Dependencies, leveling.WithMaxLevel(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, p, tree))
	assert.Contains(t, buf.String(), "warning: stopped at level 1")
}
