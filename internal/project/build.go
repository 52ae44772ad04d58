package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"discauthor/internal/discgraph"
	"discauthor/internal/reference"
)

var (
	keyPattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	keyRefPattern = regexp.MustCompile(`(f:)?@([A-Za-z0-9][A-Za-z0-9_.-]*)`)
)

type builder struct {
	baseDir string
	keys    map[string]discgraph.ID
	pending []pendingCommands
}

type pendingCommands struct {
	label string
	apply func(resolve func(string) (string, error)) error
}

// Build constructs the graph described by file.
func Build(file *File, baseDir string) (*Project, error) {
	if file == nil {
		return nil, fmt.Errorf("project is empty")
	}
	b := &builder{baseDir: baseDir, keys: make(map[string]discgraph.ID)}
	disc := discgraph.NewDisc(file.Name)
	disc.SetJumppad(file.Jumppad)

	proj := &Project{Name: file.Name, Disc: disc, Keys: b.keys}

	// Nodes are created and keyed first so commands may refer forward.
	var vmgm *discgraph.VMGM
	var vmgmMenus []*discgraph.Menu
	if spec := file.VMGM; spec != nil {
		if len(spec.Titles) > 0 {
			return nil, &discgraph.ConstraintViolation{
				Field:  "titles",
				Value:  fmt.Sprintf("%d titles", len(spec.Titles)),
				Reason: "the vmgm holds menus only",
			}
		}
		vmgm = discgraph.NewVMGM(spec.Name)
		if err := b.key(spec.Key, vmgm.ID()); err != nil {
			return nil, err
		}
		for _, code := range spec.SubpictureLangs {
			if err := vmgm.AddSubpictureLang(code); err != nil {
				return nil, fmt.Errorf("vmgm: %w", err)
			}
		}
		for i, ms := range spec.Menus {
			menu, err := b.menu(ms, fmt.Sprintf("vmgm menu %d", i+1))
			if err != nil {
				return nil, err
			}
			vmgmMenus = append(vmgmMenus, menu)
		}
	}

	type titlesetNodes struct {
		ts     *discgraph.Titleset
		menus  []*discgraph.Menu
		titles []*discgraph.Title
	}
	var titlesets []titlesetNodes
	for t, spec := range file.Titlesets {
		where := fmt.Sprintf("titleset %d", t+1)
		ts := discgraph.NewTitleset(spec.Name)
		if err := b.key(spec.Key, ts.ID()); err != nil {
			return nil, err
		}
		for _, code := range spec.AudioLangs {
			if err := ts.AddAudioLang(code); err != nil {
				return nil, fmt.Errorf("%s: %w", where, err)
			}
		}
		nodes := titlesetNodes{ts: ts}
		for i, ms := range spec.Menus {
			menu, err := b.menu(ms, fmt.Sprintf("%s menu %d", where, i+1))
			if err != nil {
				return nil, err
			}
			nodes.menus = append(nodes.menus, menu)
		}
		for i, tspec := range spec.Titles {
			title, err := b.title(tspec, fmt.Sprintf("%s title %d", where, i+1))
			if err != nil {
				return nil, err
			}
			nodes.titles = append(nodes.titles, title)
		}
		titlesets = append(titlesets, nodes)
	}

	for i, ms := range file.Detached.Menus {
		menu, err := b.menu(ms, fmt.Sprintf("detached menu %d", i+1))
		if err != nil {
			return nil, err
		}
		proj.Detached = append(proj.Detached, menu)
	}
	for i, ts := range file.Detached.Titles {
		title, err := b.title(ts, fmt.Sprintf("detached title %d", i+1))
		if err != nil {
			return nil, err
		}
		proj.Detached = append(proj.Detached, title)
	}

	for _, p := range b.pending {
		if err := p.apply(b.resolve); err != nil {
			return nil, fmt.Errorf("%s: %w", p.label, err)
		}
	}

	// Attachment goes through the discgraph API so entry checks apply.
	if vmgm != nil {
		for i, menu := range vmgmMenus {
			if err := vmgm.AddMenu(menu); err != nil {
				return nil, fmt.Errorf("vmgm menu %d: %w", i+1, err)
			}
		}
		disc.SetVMGM(vmgm)
	}
	for t, nodes := range titlesets {
		for i, menu := range nodes.menus {
			if err := nodes.ts.AddMenu(menu); err != nil {
				return nil, fmt.Errorf("titleset %d menu %d: %w", t+1, i+1, err)
			}
		}
		for _, title := range nodes.titles {
			nodes.ts.AddTitle(title)
		}
		disc.AddTitleset(nodes.ts)
	}
	return proj, nil
}

func (b *builder) key(key string, id discgraph.ID) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("key %q: use letters, digits, '_', '.' or '-'", key)
	}
	if existing, ok := b.keys[key]; ok {
		return fmt.Errorf("key %q: already used by %s", key, existing)
	}
	b.keys[key] = id
	return nil
}

// resolve replaces @key and f:@key with node identifiers.
func (b *builder) resolve(text string) (string, error) {
	var missing []string
	out := keyRefPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := keyRefPattern.FindStringSubmatch(match)
		id, ok := b.keys[sub[2]]
		if !ok {
			missing = append(missing, match)
			return match
		}
		if sub[1] != "" {
			return id.Full()
		}
		return id.String()
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown key reference %s", strings.Join(missing, ", "))
	}
	if reference.Contains(text) {
		return "", fmt.Errorf("command %q embeds a raw identifier; refer to nodes by @key", text)
	}
	return out, nil
}

func (b *builder) title(spec TitleSpec, where string) (*discgraph.Title, error) {
	title := discgraph.NewTitle(spec.Name)
	if err := b.key(spec.Key, title.ID()); err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	if err := b.content(title, spec, where); err != nil {
		return nil, err
	}
	return title, nil
}

func (b *builder) menu(spec MenuSpec, where string) (*discgraph.Menu, error) {
	entry, err := discgraph.ParseEntry(spec.Entry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	menu := discgraph.NewMenu(spec.Name, entry)
	if err := b.key(spec.Key, menu.ID()); err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	if err := b.content(&menu.Title, spec.TitleSpec, where); err != nil {
		return nil, err
	}
	buttons := spec.Buttons
	b.pending = append(b.pending, pendingCommands{
		label: where + " buttons",
		apply: func(resolve func(string) (string, error)) error {
			for i, button := range buttons {
				commands, err := resolve(button.Commands)
				if err != nil {
					return fmt.Errorf("button %d: %w", i+1, err)
				}
				menu.SetButtonCommands(commands, strings.TrimSpace(button.Name))
			}
			return nil
		},
	})
	return menu, nil
}

func (b *builder) content(title *discgraph.Title, spec TitleSpec, where string) error {
	pause, err := discgraph.ParsePause(spec.Pause)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	title.SetPause(pause)

	for i, video := range spec.Videos {
		paths, err := b.videoPaths(video)
		if err != nil {
			return fmt.Errorf("%s video %d: %w", where, i+1, err)
		}
		vpause, err := discgraph.ParsePause(video.Pause)
		if err != nil {
			return fmt.Errorf("%s video %d: %w", where, i+1, err)
		}
		for _, path := range paths {
			title.AddVideoFile(path, discgraph.WithChapters(video.Chapters), discgraph.WithVideoPause(vpause))
		}
	}

	for i, cell := range spec.Cells {
		cpause, err := discgraph.ParsePause(cell.Pause)
		if err != nil {
			return fmt.Errorf("%s cell %d: %w", where, i+1, err)
		}
		opts := []discgraph.CellOption{discgraph.WithCellPause(cpause)}
		if cell.Chapter {
			opts = append(opts, discgraph.AsChapter())
		}
		if cell.Program {
			opts = append(opts, discgraph.AsProgram())
		}
		title.AddCell(cell.Start, cell.End, opts...)
	}

	pre, post := spec.Pre, spec.Post
	b.pending = append(b.pending, pendingCommands{
		label: where,
		apply: func(resolve func(string) (string, error)) error {
			resolvedPre, err := resolve(pre)
			if err != nil {
				return fmt.Errorf("pre: %w", err)
			}
			resolvedPost, err := resolve(post)
			if err != nil {
				return fmt.Errorf("post: %w", err)
			}
			title.SetPreCommands(resolvedPre)
			title.SetPostCommands(resolvedPost)
			return nil
		},
	})
	return nil
}

// videoPaths expands one video entry. Exactly one of file and glob is set;
// glob matches are sorted so the order is stable across runs.
func (b *builder) videoPaths(spec VideoSpec) ([]string, error) {
	file := strings.TrimSpace(spec.File)
	pattern := strings.TrimSpace(spec.Glob)
	switch {
	case file != "" && pattern != "":
		return nil, fmt.Errorf("set either file or glob, not both")
	case file != "":
		return []string{b.absolute(file)}, nil
	case pattern != "":
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
		root := b.baseDir
		if filepath.IsAbs(pattern) {
			base, rest := doublestar.SplitPattern(pattern)
			root, pattern = base, rest
		}
		matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", spec.Glob, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %q matched no files", spec.Glob)
		}
		sort.Strings(matches)
		paths := make([]string, len(matches))
		for i, match := range matches {
			paths[i] = filepath.Join(root, filepath.FromSlash(match))
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("file or glob required")
	}
}

func (b *builder) absolute(path string) string {
	if filepath.IsAbs(path) || b.baseDir == "" {
		return path
	}
	return filepath.Join(b.baseDir, path)
}
