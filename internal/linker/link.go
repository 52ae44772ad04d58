package linker

import (
	"errors"
	"fmt"

	"discauthor/internal/discgraph"
	"discauthor/internal/reference"
)

// Commands holds the resolved command text of one title or menu.
type Commands struct {
	Pre     string
	Post    string
	Buttons []string
}

// Program is the result of a successful link: the address map and the
// resolved commands of every attached title and menu.
type Program struct {
	Disc     *discgraph.Disc
	Registry *Registry
	commands map[discgraph.ID]Commands
}

// Commands returns the resolved commands for id.
func (p *Program) Commands(id discgraph.ID) Commands {
	return p.commands[id]
}

// Address returns the address of an attached node.
func (p *Program) Address(id discgraph.ID) (Address, bool) {
	entry, ok := p.Registry.Lookup(id)
	return entry.Address, ok
}

// playable is a title or menu reached by the walk.
type playable struct {
	title   *discgraph.Title
	menu    *discgraph.Menu
	address Address
}

func (p playable) node() discgraph.Node {
	if p.menu != nil {
		return p.menu
	}
	return p.title
}

// Link collects addresses for the attached graph, validates content and
// rewrites every identifier token. It returns a *FaultError when content or
// references are missing and a *DuplicateIdentifierError when one node is
// attached twice.
func Link(disc *discgraph.Disc) (*Program, error) {
	if disc == nil {
		return nil, errors.New("link: disc is nil")
	}

	registry, playables, err := collect(disc)
	if err != nil {
		return nil, err
	}

	program := &Program{
		Disc:     disc,
		Registry: registry,
		commands: make(map[discgraph.ID]Commands, len(playables)),
	}

	var faults []Fault
	for _, p := range playables {
		node := p.node()
		label := discgraph.Label(node)

		var videos int
		var pre, post string
		var buttons []discgraph.Button
		if p.menu != nil {
			videos = len(p.menu.VideoFiles())
			pre, post = p.menu.PreCommands(), p.menu.PostCommands()
			buttons = p.menu.Buttons()
		} else {
			videos = len(p.title.VideoFiles())
			pre, post = p.title.PreCommands(), p.title.PostCommands()
		}

		if videos == 0 {
			faults = append(faults, Fault{
				Kind:    FaultContentMissing,
				Node:    node.ID(),
				Label:   label,
				Address: p.address,
			})
		}

		resolve := func(field, text string) string {
			out, missed := substitute(registry, text)
			for _, tok := range missed {
				faults = append(faults, Fault{
					Kind:    FaultUnresolvedReference,
					Node:    node.ID(),
					Label:   label,
					Address: p.address,
					Field:   field,
					Token:   tok.Raw,
				})
			}
			return out
		}

		cmds := Commands{
			Pre:  resolve("pre", pre),
			Post: resolve("post", post),
		}
		if len(buttons) > 0 {
			cmds.Buttons = make([]string, len(buttons))
			for i, b := range buttons {
				cmds.Buttons[i] = resolve(buttonField(i, b), b.Commands)
			}
		}
		program.commands[node.ID()] = cmds
	}

	if len(faults) > 0 {
		return nil, &FaultError{Faults: faults}
	}
	return program, nil
}

// Resolve rewrites the tokens of a single command string against registry.
// The returned tokens could not be resolved and were left in place.
func Resolve(registry *Registry, text string) (string, []reference.Token) {
	return substitute(registry, text)
}

func substitute(registry *Registry, text string) (string, []reference.Token) {
	return reference.Rewrite(text, func(tok reference.Token) (string, bool) {
		entry, ok := registry.Lookup(discgraph.ID(tok.ID))
		if !ok {
			return "", false
		}
		return entry.Address.Render(tok.Form), true
	})
}

func collect(disc *discgraph.Disc) (*Registry, []playable, error) {
	registry := NewRegistry()
	var playables []playable

	if vmgm := disc.VMGM(); vmgm != nil {
		if err := registry.Insert(vmgm, Address{Domain: DomainVMGM, Kind: reference.KindVMGM}); err != nil {
			return nil, nil, err
		}
		for i, menu := range vmgm.Menus() {
			addr := Address{Domain: DomainVMGM, Kind: reference.KindMenu, Ordinal: i + 1}
			if err := registry.Insert(menu, addr); err != nil {
				return nil, nil, err
			}
			playables = append(playables, playable{menu: menu, address: addr})
		}
	}

	for t, ts := range disc.Titlesets() {
		number := t + 1
		if err := registry.Insert(ts, Address{Domain: DomainTitleset, Titleset: number, Kind: reference.KindTitleset}); err != nil {
			return nil, nil, err
		}
		for i, menu := range ts.Menus() {
			addr := Address{Domain: DomainTitleset, Titleset: number, Kind: reference.KindMenu, Ordinal: i + 1}
			if err := registry.Insert(menu, addr); err != nil {
				return nil, nil, err
			}
			playables = append(playables, playable{menu: menu, address: addr})
		}
		for i, title := range ts.Titles() {
			addr := Address{Domain: DomainTitleset, Titleset: number, Kind: reference.KindTitle, Ordinal: i + 1}
			if err := registry.Insert(title, addr); err != nil {
				return nil, nil, err
			}
			playables = append(playables, playable{title: title, address: addr})
		}
	}
	return registry, playables, nil
}

func buttonField(index int, b discgraph.Button) string {
	if b.Name != "" {
		return fmt.Sprintf("button %d (%s)", index+1, b.Name)
	}
	return fmt.Sprintf("button %d", index+1)
}
