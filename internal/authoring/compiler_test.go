package authoring_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"discauthor/internal/authoring"
	"discauthor/internal/config"
	"discauthor/internal/discgraph"
	"discauthor/internal/linker"
	"discauthor/internal/logging"
	"discauthor/internal/reference"
	"discauthor/internal/services"
)

func newCompiler() *authoring.Compiler {
	return authoring.NewCompiler(logging.NewNop())
}

func menuWithVideo(t *testing.T, name string, entry discgraph.Entry) *discgraph.Menu {
	t.Helper()
	m := discgraph.NewMenu(name, entry)
	m.AddVideoFile("/media/" + name + ".mpg")
	return m
}

func titleWithVideo(name string) *discgraph.Title {
	title := discgraph.NewTitle(name)
	title.AddVideoFile("/media/" + name + ".mpg")
	return title
}

func simpleDisc(t *testing.T) (*discgraph.Disc, *discgraph.Menu, *discgraph.Title) {
	t.Helper()
	disc := discgraph.NewDisc("simple")
	ts := discgraph.NewTitleset("main")
	menu := menuWithVideo(t, "M1", discgraph.EntryRoot)
	if err := ts.AddMenu(menu); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	title := titleWithVideo("T1")
	ts.AddTitle(title)
	disc.AddTitleset(ts)
	return disc, menu, title
}

func TestRenderSimpleTitleset(t *testing.T) {
	disc, menu, title := simpleDisc(t)
	menu.SetButtonCommands("jump title "+title.ID().String()+";", "play")

	result, err := newCompiler().Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Titlesets != 1 || result.Menus != 1 || result.Titles != 1 {
		t.Fatalf("unexpected counts %+v", result)
	}
	doc := string(result.Document)
	for _, want := range []string{
		"<!-- titleset 1: main -->",
		"<!-- titleset 1 menu 1: M1 -->",
		"<!-- titleset 1 title 1: T1 -->",
		`<button name="play">jump title 1;</button>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}

	want := map[discgraph.ID]string{
		menu.ID():  "titleset 1 menu 1",
		title.ID(): "titleset 1 title 1",
	}
	for _, row := range result.Addresses {
		if expected, ok := want[row.ID]; ok && row.Address.Full() != expected {
			t.Fatalf("address of %s = %s, want %s", row.ID, row.Address.Full(), expected)
		}
	}
	if len(result.Digest) != 64 {
		t.Fatalf("expected 64 hex digest, got %q", result.Digest)
	}
}

func TestRenderReportsContentMissing(t *testing.T) {
	disc := discgraph.NewDisc("empty")
	ts := discgraph.NewTitleset("set")
	empty := discgraph.NewTitle("blank")
	ts.AddTitle(empty)
	disc.AddTitleset(ts)

	_, err := newCompiler().Render(disc, authoring.DefaultOptions())
	if !errors.Is(err, linker.ErrContentMissing) {
		t.Fatalf("expected content missing, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	var faults *linker.FaultError
	if !errors.As(err, &faults) {
		t.Fatalf("expected *linker.FaultError, got %T", err)
	}
	missing := faults.ContentMissing()
	if len(missing) != 1 || missing[0].Node != empty.ID() {
		t.Fatalf("unexpected faults %+v", faults.Faults)
	}
}

func TestRenderUnattachedReferenceThenAttach(t *testing.T) {
	disc := discgraph.NewDisc("refs")
	ts := discgraph.NewTitleset("set")
	a := menuWithVideo(t, "A", discgraph.EntryRoot)
	if err := ts.AddMenu(a); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	ts.AddTitle(titleWithVideo("feature"))
	disc.AddTitleset(ts)

	b := discgraph.NewMenu("B", discgraph.EntryAudio)
	raw := b.ID().Full()
	a.SetPostCommands("jump " + raw + ";")

	compiler := newCompiler()
	_, err := compiler.Render(disc, authoring.DefaultOptions())
	var faults *linker.FaultError
	if !errors.As(err, &faults) {
		t.Fatalf("expected fault error, got %v", err)
	}
	refs := faults.UnresolvedReferences()
	if len(refs) != 1 || refs[0].Token != raw || refs[0].Field != "post" {
		t.Fatalf("unexpected reference faults %+v", refs)
	}

	if err := ts.AddMenu(b); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	b.AddVideoFile("/media/b.mpg")

	result, err := compiler.Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("Render after attach returned error: %v", err)
	}
	doc := string(result.Document)
	if !strings.Contains(doc, "<post>jump titleset 1 menu 2;</post>") {
		t.Fatalf("expected resolved post command:\n%s", doc)
	}
	if strings.Contains(doc, raw) {
		t.Fatalf("raw token leaked into document:\n%s", doc)
	}
}

func TestRenderCrossTitlesetReference(t *testing.T) {
	disc := discgraph.NewDisc("two sets")
	ts1 := discgraph.NewTitleset("first")
	ts2 := discgraph.NewTitleset("second")
	for _, ts := range []*discgraph.Titleset{ts1, ts2} {
		disc.AddTitleset(ts)
	}
	if err := ts1.AddMenu(menuWithVideo(t, "menu1", discgraph.EntryRoot)); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	ts1.AddTitle(titleWithVideo("title1"))

	menu2 := menuWithVideo(t, "menu2", discgraph.EntryRoot)
	if err := ts2.AddMenu(menu2); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	title2 := titleWithVideo("title2")
	ts2.AddTitle(title2)
	menu2.SetPostCommands("jump " + title2.ID().Full() + ";")

	result, err := newCompiler().Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := string(result.Document)
	if !strings.Contains(doc, "<post>jump titleset 2 title 1;</post>") {
		t.Fatalf("expected ordinal address in post command:\n%s", doc)
	}
	if strings.Contains(doc, title2.ID().String()) {
		t.Fatalf("raw identifier leaked:\n%s", doc)
	}
}

func TestRenderIsIdempotentAndFullyResolved(t *testing.T) {
	disc := discgraph.NewDisc("loop")
	vmgm := discgraph.NewVMGM("top")
	disc.SetVMGM(vmgm)
	ts := discgraph.NewTitleset("set")
	disc.AddTitleset(ts)

	top := menuWithVideo(t, "top", discgraph.EntryTitle)
	if err := vmgm.AddMenu(top); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	root := menuWithVideo(t, "root", discgraph.EntryRoot)
	if err := ts.AddMenu(root); err != nil {
		t.Fatalf("AddMenu: %v", err)
	}
	feature := titleWithVideo("feature")
	ts.AddTitle(feature)

	top.SetButtonCommands("jump "+ts.ID().Full()+";", "enter")
	root.SetButtonCommands("jump "+feature.ID().Full()+";", "play")
	root.SetButtonCommands("jump "+top.ID().Full()+";", "back")
	feature.SetPostCommands("call " + root.ID().Full() + ";")
	root.SetPreCommands("g1 = " + root.ID().String() + ";")

	compiler := newCompiler()
	first, err := compiler.Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	second, err := compiler.Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("second Render returned error: %v", err)
	}
	if string(first.Document) != string(second.Document) || first.Digest != second.Digest {
		t.Fatal("rendering the same graph twice produced different output")
	}
	if reference.Contains(string(first.Document)) {
		t.Fatalf("document still contains identifier tokens:\n%s", first.Document)
	}
	doc := string(first.Document)
	for _, want := range []string{
		`<button name="enter">jump titleset 1 menu;</button>`,
		`<button name="back">jump vmgm menu 1;</button>`,
		"<post>call titleset 1 menu 1;</post>",
		"<pre>g1 = 1;</pre>",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderOptions(t *testing.T) {
	disc, _, _ := simpleDisc(t)
	opts := authoring.Options{Dest: "/srv/dvd/out", Jumppad: true}
	result, err := newCompiler().Render(disc, opts)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	doc := string(result.Document)
	if !strings.Contains(doc, `<dvdauthor dest="/srv/dvd/out" jumppad="yes">`) {
		t.Fatalf("unexpected root element:\n%s", doc)
	}
	if strings.Contains(doc, "<!--") {
		t.Fatalf("expected no comments when disabled:\n%s", doc)
	}
}

func TestRenderNilDisc(t *testing.T) {
	if _, err := newCompiler().Render(nil, authoring.DefaultOptions()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Comments = false
	cfg.Render.AddressAttributes = true
	cfg.Render.Jumppad = true
	opts := authoring.OptionsFromConfig(&cfg, "/out")
	want := authoring.Options{Dest: "/out", AddressAttributes: true, Jumppad: true}
	if opts != want {
		t.Fatalf("OptionsFromConfig = %+v, want %+v", opts, want)
	}
	if got := authoring.OptionsFromConfig(nil, "/x"); !got.Comments || got.Dest != "/x" {
		t.Fatalf("unexpected nil-config options %+v", got)
	}
}

func TestWriteFileIsAtomicAndSerialized(t *testing.T) {
	disc, _, _ := simpleDisc(t)
	path := filepath.Join(t.TempDir(), "nested", "disc.xml")
	compiler := newCompiler()

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := compiler.WriteFile(context.Background(), disc, path, authoring.DefaultOptions())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("WriteFile returned error: %v", err)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	result, err := compiler.Render(disc, authoring.DefaultOptions())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if string(content) != string(result.Document) {
		t.Fatal("written document differs from rendered document")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestWriteFileDoesNotTouchExistingDocumentOnFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disc.xml")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	disc := discgraph.NewDisc("broken")
	ts := discgraph.NewTitleset("set")
	ts.AddTitle(discgraph.NewTitle("empty"))
	disc.AddTitleset(ts)

	if _, err := newCompiler().WriteFile(context.Background(), disc, path, authoring.DefaultOptions()); err == nil {
		t.Fatal("expected render failure")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if string(content) != "previous" {
		t.Fatalf("document was modified: %q", content)
	}
}

func TestDigestMatchesKnownVector(t *testing.T) {
	// BLAKE3-256 of the empty input.
	const empty = "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"
	if got := authoring.Digest(nil); got != empty {
		t.Fatalf("Digest(nil) = %s", got)
	}
}
