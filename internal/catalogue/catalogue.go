package catalogue

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalogue is a loaded halo-catalogue handle: named float64 columns, one
// value per halo.
type Catalogue struct {
	Path    string
	columns map[string][]float64
	haloes  int
}

// registration lists derived columns to add on load: each takes an
// existing source column and applies a constant scale factor.
type registration struct {
	Columns []struct {
		Name   string  `yaml:"name"`
		Source string  `yaml:"source"`
		Scale  float64 `yaml:"scale"`
	} `yaml:"columns"`
}

// LoadCatalogue reads a columnar halo table. The first non-blank line must
// be a comment naming the columns ("# masses temperatures ..."); the
// remaining lines are whitespace-separated values, one row per halo.
// registrationFile optionally names a YAML file of derived columns to
// register on the handle; pass "" for none.
func LoadCatalogue(path, registrationFile string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	var names []string
	cols := map[string][]float64{}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if names == nil {
				names = strings.Fields(strings.TrimPrefix(text, "#"))
				for _, n := range names {
					cols[n] = nil
				}
			}
			continue
		}
		if names == nil {
			return nil, fmt.Errorf("catalogue %s: data before column header on line %d", path, line)
		}
		fields := strings.Fields(text)
		if len(fields) != len(names) {
			return nil, fmt.Errorf("catalogue %s line %d: %d values for %d columns", path, line, len(fields), len(names))
		}
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("catalogue %s line %d: %w", path, line, err)
			}
			cols[names[i]] = append(cols[names[i]], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan catalogue: %w", err)
	}
	if names == nil {
		return nil, fmt.Errorf("catalogue %s: missing column header", path)
	}

	cat := &Catalogue{Path: path, columns: cols, haloes: len(cols[names[0]])}
	if registrationFile != "" {
		if err := cat.register(registrationFile); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// register adds the derived columns defined in a registration file.
func (c *Catalogue) register(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read registration file: %w", err)
	}
	var reg registration
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return fmt.Errorf("parse registration file %s: %w", path, err)
	}
	for _, d := range reg.Columns {
		src, ok := c.columns[d.Source]
		if !ok {
			return fmt.Errorf("registration column %q: source %q not in catalogue", d.Name, d.Source)
		}
		scale := d.Scale
		if scale == 0 {
			scale = 1
		}
		derived := make([]float64, len(src))
		for i, v := range src {
			derived[i] = v * scale
		}
		c.columns[d.Name] = derived
	}
	return nil
}

// Column returns the named column, or false if the catalogue lacks it.
func (c *Catalogue) Column(name string) ([]float64, bool) {
	col, ok := c.columns[name]
	return col, ok
}

// Columns returns the available column names, sorted.
func (c *Catalogue) Columns() []string {
	names := make([]string, 0, len(c.columns))
	for n := range c.columns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NumHaloes returns the row count.
func (c *Catalogue) NumHaloes() int {
	return c.haloes
}
