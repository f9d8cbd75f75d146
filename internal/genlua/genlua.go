package genlua

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"auraforge/internal/fileutil"
	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// NameSource supplies item display names for artifact comments; lookups
// may miss.
type NameSource interface {
	Item(id int64) (string, bool)
}

// Generator writes one Lua artifact per category under outputDir.
type Generator struct {
	outputDir string
	logger    *slog.Logger
	titler    cases.Caser
}

// New returns a Generator rooted at outputDir.
func New(outputDir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "genlua"),
		titler:    cases.Title(language.English),
	}
}

const artifactTemplate = `-- {{.Title}} item auras.
{{- if .Stamp}}
-- Source: {{.Stamp}}
{{- end}}
-- Generated by auraforge; do not edit by hand.

AuraforgeDB = AuraforgeDB or {}
AuraforgeDB[{{printf "%q" .Category}}] = {
{{- range .Items}}
	[{{.ID}}] = {{"{"}}{{- if .Name}} -- {{.Name}}{{end}}
{{- range .Auras}}
		[{{.ID}}] = "{{luaString .Name}}",
{{- end}}
	},
{{- end}}
}
`

var artifact = template.Must(template.New("artifact").Funcs(template.FuncMap{
	"luaString": luaString,
}).Parse(artifactTemplate))

type fileData struct {
	Title    string
	Category string
	Stamp    string
	Items    []itemData
}

type itemData struct {
	ID    int64
	Name  string
	Auras []auraData
}

type auraData struct {
	ID   int64
	Name string
}

// Write renders output into <outputDir>/<category>.lua and returns the
// written path. A nil names source omits item name comments.
func (g *Generator) Write(category, stamp string, output record.Output, names NameSource) (string, error) {
	if category == "" {
		return "", fmt.Errorf("category is required")
	}

	data := fileData{
		Title:    g.titler.String(strings.ReplaceAll(category, "_", " ")),
		Category: category,
		Stamp:    commentText(stamp),
	}
	for _, itemID := range output.ItemIDs() {
		item := itemData{ID: itemID}
		if names != nil {
			if name, found := names.Item(itemID); found {
				item.Name = commentText(name)
			}
		}
		auras := output[itemID]
		for _, spellID := range auras.IDs() {
			item.Auras = append(item.Auras, auraData{ID: spellID, Name: auras[spellID]})
		}
		data.Items = append(data.Items, item)
	}

	var buf bytes.Buffer
	if err := artifact.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render artifact for %q: %w", category, err)
	}

	path := filepath.Join(g.outputDir, category+".lua")
	if err := fileutil.WriteAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write artifact for %q: %w", category, err)
	}

	g.logger.Debug("artifact written",
		logging.String(logging.FieldCategory, category),
		logging.String("path", path),
		logging.Int("items", len(data.Items)),
	)
	return path, nil
}

// commentText flattens a value for interpolation into a single-line Lua
// comment. Stamps and item names arrive from remote pages; a stray control
// character would break the artifact.
func commentText(value string) string {
	flattened := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
	return strings.TrimSpace(flattened)
}

// luaString escapes a value for use inside a double-quoted Lua string.
func luaString(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
