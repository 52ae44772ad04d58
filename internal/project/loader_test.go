package project_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"discauthor/internal/authoring"
	"discauthor/internal/discgraph"
	"discauthor/internal/logging"
	"discauthor/internal/project"
	"discauthor/internal/services"
)

func TestLoadProjectFiles(t *testing.T) {
	for _, name := range []string{"holiday.toml", "holiday.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", name)
			proj, err := project.Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if proj.Name != "Holiday" {
				t.Fatalf("unexpected name %q", proj.Name)
			}
			if !proj.Disc.Jumppad() {
				t.Fatal("expected jumppad enabled")
			}
			if len(proj.Detached) != 1 || proj.Detached[0].ID() != proj.Keys["teaser"] {
				t.Fatalf("unexpected detached nodes %v", proj.Detached)
			}

			titlesets := proj.Disc.Titlesets()
			if len(titlesets) != 2 {
				t.Fatalf("expected 2 titlesets, got %d", len(titlesets))
			}
			langs := titlesets[0].AudioLangs()
			if len(langs) != 2 || langs[0].ISO2 != "en" || langs[1].ISO2 != "fr" {
				t.Fatalf("unexpected audio langs %+v", langs)
			}

			clips := titlesets[1].Titles()[0].VideoFiles()
			if len(clips) != 2 {
				t.Fatalf("expected 2 globbed clips, got %+v", clips)
			}
			baseDir, _ := filepath.Abs("testdata")
			if clips[0].Path != filepath.Join(baseDir, "media", "extras", "a.mpg") || clips[1].Path != filepath.Join(baseDir, "media", "extras", "b.mpg") {
				t.Fatalf("unexpected clip order %+v", clips)
			}

			feature := titlesets[0].Titles()[0]
			videos := feature.VideoFiles()
			if len(videos) != 1 || videos[0].Chapters != "0,5:00,10:00" || videos[0].Pause != discgraph.Pause("2") {
				t.Fatalf("unexpected feature videos %+v", videos)
			}
			if cells := feature.Cells(); len(cells) != 1 || !cells[0].Chapter || cells[0].Program {
				t.Fatalf("unexpected cells %+v", cells)
			}
			if feature.PostCommands() != "call "+proj.Keys["root"].Full()+";" {
				t.Fatalf("unexpected feature post %q", feature.PostCommands())
			}

			result, err := authoring.NewCompiler(logging.NewNop()).Render(proj.Disc, authoring.DefaultOptions())
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			doc := string(result.Document)
			for _, want := range []string{
				`<button name="play">jump titleset 1 title 1;</button>`,
				`<button name="extras">jump titleset 2 menu;</button>`,
				"<button>jump title 1 chapter 2;</button>",
				"<post>jump vmgm menu 1;</post>",
				"<post>call titleset 1 menu 1;</post>",
				`<audio lang="fr"/>`,
				`<subpicture lang="en"/>`,
			} {
				if !strings.Contains(doc, want) {
					t.Fatalf("document missing %q:\n%s", want, doc)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown field",
			doc:  "name = \"x\"\nbogus = 1\n",
			want: "strict mode",
		},
		{
			name: "unknown key reference",
			doc: `[[titlesets]]
[[titlesets.titles]]
videos = [{ file = "a.mpg" }]
post = "jump f:@missing;"
`,
			want: "unknown key reference f:@missing",
		},
		{
			name: "duplicate key",
			doc: `[[titlesets]]
key = "a"
[[titlesets]]
key = "a"
`,
			want: `key "a": already used`,
		},
		{
			name: "invalid key",
			doc: `[[titlesets]]
key = "has space"
`,
			want: `key "has space"`,
		},
		{
			name: "unknown entry",
			doc: `[[titlesets]]
[[titlesets.menus]]
entry = "chapters"
`,
			want: "unknown menu entry point",
		},
		{
			name: "raw identifier",
			doc: `[[titlesets]]
[[titlesets.titles]]
videos = [{ file = "a.mpg" }]
post = "jump f:ID:title:1;"
`,
			want: "raw identifier",
		},
		{
			name: "file and glob",
			doc: `[[titlesets]]
[[titlesets.titles]]
videos = [{ file = "a.mpg", glob = "*.mpg" }]
`,
			want: "either file or glob",
		},
		{
			name: "glob without matches",
			doc: `[[titlesets]]
[[titlesets.titles]]
videos = [{ glob = "nothing/*.mpg" }]
`,
			want: "matched no files",
		},
		{
			name: "bad pause",
			doc: `[[titlesets]]
[[titlesets.titles]]
pause = "300"
`,
			want: "between 1 and 254",
		},
		{
			name: "unknown language",
			doc: `[[titlesets]]
audio_langs = ["zz-not-a-language"]
`,
			want: "titleset 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := project.Parse([]byte(tt.doc), project.FormatTOML, t.TempDir())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseRejectsTitleEntryInTitleset(t *testing.T) {
	doc := `[[titlesets]]
[[titlesets.menus]]
entry = "title"
videos = [{ file = "m.mpg" }]
`
	_, err := project.Parse([]byte(doc), project.FormatTOML, t.TempDir())
	if !errors.Is(err, discgraph.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}

func TestParseRejectsVMGMTitles(t *testing.T) {
	doc := `vmgm:
  titles:
    - name: nope
`
	_, err := project.Parse([]byte(doc), project.FormatYAML, t.TempDir())
	if !errors.Is(err, discgraph.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	doc := "titlesets:\n  - name: a\n    colour: red\n"
	if _, err := project.Parse([]byte(doc), project.FormatYAML, t.TempDir()); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestDetachedReferenceFailsAtRender(t *testing.T) {
	doc := `[[titlesets]]
[[titlesets.titles]]
videos = [{ file = "a.mpg" }]
post = "jump f:@teaser;"

[[detached.titles]]
key = "teaser"
videos = [{ file = "t.mpg" }]
`
	proj, err := project.Parse([]byte(doc), project.FormatTOML, t.TempDir())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = authoring.NewCompiler(nil).Render(proj.Disc, authoring.DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), proj.Keys["teaser"].Full()) {
		t.Fatalf("expected unresolved reference naming the teaser token, got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := project.Load(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := project.Load("project.json"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for extension, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]project.Format{
		"disc.toml": project.FormatTOML,
		"disc.YAML": project.FormatYAML,
		"disc.yml":  project.FormatYAML,
	}
	for path, want := range tests {
		got, err := project.FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
}
