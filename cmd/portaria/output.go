package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// render imprime v como JSON indentado o como tabla alineada.
func (c *cli) render(v any, headers []string, rows [][]string) error {
	if c.format == "json" {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// renderFooter línea de paginación, solo en modo tabla.
func (c *cli) renderFooter(shown int, p entity.Pagination) {
	if c.format == "json" {
		return
	}
	fmt.Fprintf(c.out, "\n%d de %d registros (página %d de %d)\n", shown, p.Total, p.CurrentPage, p.LastPage)
}

func rowsOf[T any](items []T, row func(T) []string) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, row(it))
	}
	return rows
}

// readPayload decodifica el JSON de --data, o del archivo de --file ("-" = stdin).
func readPayload(data, file string, stdin io.Reader, out any) error {
	var raw []byte
	switch {
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("leer stdin: %w", err)
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("leer %s: %w", file, err)
		}
		raw = b
	default:
		return fmt.Errorf("indique --data o --file")
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}
	return nil
}
