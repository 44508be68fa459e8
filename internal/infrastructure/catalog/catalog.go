// Package catalog loads the static translation table shipped with the binary.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Load parses the embedded locale catalogs.
func Load() (domain.TranslationTable, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// MustLoad is Load for process start-up; the embedded catalogs are fixed at
// build time so a failure is a build defect.
func MustLoad() domain.TranslationTable {
	table, err := Load()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return table
}

// LoadFS reads every <locale>.yaml file at the root of fsys. Each file is a
// flat key: string mapping.
func LoadFS(fsys fs.FS) (domain.TranslationTable, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}

	table := make(domain.TranslationTable, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var entries map[string]string
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		table[strings.TrimSuffix(path.Base(name), ".yaml")] = entries
	}
	return table, nil
}

// MissingKeys lists, per locale, the keys present in the English catalog but
// absent from that locale. Those keys resolve through the English fallback.
func MissingKeys(table domain.TranslationTable) map[string][]string {
	base := table[domain.DefaultLocale]
	out := map[string][]string{}

	for code, entries := range table {
		if code == domain.DefaultLocale {
			continue
		}
		for key := range base {
			if entries[key] == "" {
				out[code] = append(out[code], key)
			}
		}
		sort.Strings(out[code])
	}
	return out
}
