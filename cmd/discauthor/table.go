package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableSpec describes a table's columns. Aligns and WidthMax are indexed by
// column; missing entries mean left-aligned and unbounded.
type tableSpec struct {
	Title    string
	Headers  []string
	Aligns   []columnAlignment
	WidthMax map[int]int
}

func (s tableSpec) render(rows [][]string) string {
	columns := len(s.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if s.Title != "" {
		tw.SetTitle("%s", s.Title)
	}

	header := make(table.Row, columns)
	for i, h := range s.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if i < len(s.Aligns) && s.Aligns[i] == alignRight {
			cfg.Align = text.AlignRight
		}
		if width, ok := s.WidthMax[i]; ok && width > 0 {
			cfg.WidthMax = width
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
