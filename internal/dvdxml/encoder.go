package dvdxml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"discauthor/internal/discgraph"
	"discauthor/internal/language"
	"discauthor/internal/linker"
)

// Options controls optional parts of the document.
type Options struct {
	// Dest is written as the dvdauthor dest attribute when set.
	Dest string
	// Comments emits node names and addresses as XML comments.
	Comments bool
	// AddressAttributes adds an address attribute to titleset and pgc elements.
	// dvdauthor rejects unknown attributes, so leave this off for real builds.
	AddressAttributes bool
	// Jumppad forces jumppad="yes" even when the disc does not request it.
	Jumppad bool
}

// Encode renders program as a dvdauthor document.
func Encode(program *linker.Program, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, program, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders program to w.
func Write(w io.Writer, program *linker.Program, opts Options) error {
	if program == nil || program.Disc == nil {
		return errors.New("dvdxml: program is nil")
	}
	e := &encoder{opts: opts, program: program}
	e.document(program.Disc)
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return fmt.Errorf("write dvdauthor document: %w", err)
	}
	return nil
}

type attr struct {
	name  string
	value string
}

type encoder struct {
	buf     bytes.Buffer
	depth   int
	opts    Options
	program *linker.Program
}

func (e *encoder) document(disc *discgraph.Disc) {
	e.buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	var root []attr
	if dest := strings.TrimSpace(e.opts.Dest); dest != "" {
		root = append(root, attr{"dest", dest})
	}
	if disc.Jumppad() || e.opts.Jumppad {
		root = append(root, attr{"jumppad", "yes"})
	}
	e.open("dvdauthor", root...)
	if name := strings.TrimSpace(disc.Name()); name != "" {
		e.comment("disc: " + name)
	}

	e.vmgm(disc.VMGM())
	for _, ts := range disc.Titlesets() {
		e.titleset(ts)
	}
	e.close("dvdauthor")
}

func (e *encoder) vmgm(vmgm *discgraph.VMGM) {
	if vmgm == nil {
		e.empty("vmgm")
		return
	}
	menus := vmgm.Menus()
	langs := vmgm.SubpictureLangs()
	if len(menus) == 0 && len(langs) == 0 {
		e.empty("vmgm")
		return
	}
	e.open("vmgm")
	if name := strings.TrimSpace(vmgm.Name()); name != "" {
		e.comment("vmgm: " + name)
	}
	e.open("menus")
	e.langs("subpicture", langs)
	for _, menu := range menus {
		e.menu(menu)
	}
	e.close("menus")
	e.close("vmgm")
}

func (e *encoder) titleset(ts *discgraph.Titleset) {
	addr, _ := e.program.Address(ts.ID())
	var attrs []attr
	if e.opts.AddressAttributes {
		attrs = append(attrs, attr{"address", addr.Location()})
	}
	e.open("titleset", attrs...)
	e.comment(describe(addr, ts.Name()))

	if menus := ts.Menus(); len(menus) > 0 {
		e.open("menus")
		for _, menu := range menus {
			e.menu(menu)
		}
		e.close("menus")
	}

	titles := ts.Titles()
	langs := ts.AudioLangs()
	if len(titles) == 0 && len(langs) == 0 {
		e.empty("titles")
	} else {
		e.open("titles")
		e.langs("audio", langs)
		for _, title := range titles {
			e.pgc(title, nil)
		}
		e.close("titles")
	}
	e.close("titleset")
}

func (e *encoder) langs(element string, codes []language.Code) {
	for _, code := range codes {
		e.empty(element, attr{"lang", code.ISO2})
	}
}

func (e *encoder) menu(menu *discgraph.Menu) {
	e.pgc(&menu.Title, menu)
}

// pgc writes one program chain. menu is nil for titles.
func (e *encoder) pgc(title *discgraph.Title, menu *discgraph.Menu) {
	addr, _ := e.program.Address(title.ID())
	cmds := e.program.Commands(title.ID())

	var attrs []attr
	if menu != nil && menu.Entry() != "" {
		attrs = append(attrs, attr{"entry", string(menu.Entry())})
	}
	if p := title.Pause(); p != discgraph.PauseNone {
		attrs = append(attrs, attr{"pause", string(p)})
	}
	if e.opts.AddressAttributes {
		attrs = append(attrs, attr{"address", addr.Location()})
	}

	e.comment(describe(addr, title.Name()))
	e.open("pgc", attrs...)
	if cmds.Pre != "" {
		e.text("pre", cmds.Pre)
	}

	videos := title.VideoFiles()
	cells := title.Cells()
	for i, video := range videos {
		vob := []attr{{"file", video.Path}}
		if video.Chapters != "" {
			vob = append(vob, attr{"chapters", video.Chapters})
		}
		if video.Pause != discgraph.PauseNone {
			vob = append(vob, attr{"pause", string(video.Pause)})
		}
		// Cells belong to the title; dvdauthor nests them in a vob, so they
		// go under the last one.
		if i == len(videos)-1 && len(cells) > 0 {
			e.open("vob", vob...)
			for _, cell := range cells {
				e.cell(cell)
			}
			e.close("vob")
			continue
		}
		e.empty("vob", vob...)
	}

	if menu != nil {
		for i, b := range menu.Buttons() {
			command := b.Commands
			if i < len(cmds.Buttons) {
				command = cmds.Buttons[i]
			}
			if b.Name != "" {
				e.text("button", command, attr{"name", b.Name})
			} else {
				e.text("button", command)
			}
		}
	}

	if cmds.Post != "" {
		e.text("post", cmds.Post)
	}
	e.close("pgc")
}

func (e *encoder) cell(cell discgraph.Cell) {
	attrs := []attr{{"start", cell.Start}}
	if cell.End != "" {
		attrs = append(attrs, attr{"end", cell.End})
	}
	if cell.Chapter {
		attrs = append(attrs, attr{"chapter", "1"})
	}
	if cell.Program {
		attrs = append(attrs, attr{"program", "1"})
	}
	if cell.Pause != discgraph.PauseNone {
		attrs = append(attrs, attr{"pause", string(cell.Pause)})
	}
	e.empty("cell", attrs...)
}

func describe(addr linker.Address, name string) string {
	label := addr.Location()
	if name = strings.TrimSpace(name); name != "" {
		label += ": " + name
	}
	return label
}

func (e *encoder) indent() {
	e.buf.WriteString(strings.Repeat("  ", e.depth))
}

func (e *encoder) startTag(name string, attrs []attr) {
	e.buf.WriteByte('<')
	e.buf.WriteString(name)
	for _, a := range attrs {
		e.buf.WriteByte(' ')
		e.buf.WriteString(a.name)
		e.buf.WriteString(`="`)
		e.buf.WriteString(Escape(a.value))
		e.buf.WriteByte('"')
	}
}

func (e *encoder) open(name string, attrs ...attr) {
	e.indent()
	e.startTag(name, attrs)
	e.buf.WriteString(">\n")
	e.depth++
}

func (e *encoder) close(name string) {
	e.depth--
	e.indent()
	e.buf.WriteString("</" + name + ">\n")
}

func (e *encoder) empty(name string, attrs ...attr) {
	e.indent()
	e.startTag(name, attrs)
	e.buf.WriteString("/>\n")
}

func (e *encoder) text(name, content string, attrs ...attr) {
	e.indent()
	e.startTag(name, attrs)
	e.buf.WriteByte('>')
	e.buf.WriteString(Escape(content))
	e.buf.WriteString("</" + name + ">\n")
}

func (e *encoder) comment(text string) {
	if !e.opts.Comments {
		return
	}
	e.indent()
	e.buf.WriteString("<!-- " + escapeComment(text) + " -->\n")
}
