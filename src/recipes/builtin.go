// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package recipes

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var loadBuiltins = sync.OnceValues(func() (map[string]*Recipe, error) {
	entries, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}

	out := make(map[string]*Recipe, len(entries))
	for _, path := range entries {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, err
		}
		r, err := Load(data, FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("built-in %s: %w", path, err)
		}
		out[r.Name] = r
	}
	return out, nil
})

// Builtin returns a copy of the named built-in recipe.
func Builtin(name string) (*Recipe, error) {
	all, err := loadBuiltins()
	if err != nil {
		return nil, err
	}
	r, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownRecipe, name, strings.Join(Names(), ", "))
	}
	return r.clone(), nil
}

// Names returns the built-in recipe names in sorted order.
func Names() []string {
	all, err := loadBuiltins()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// List returns copies of all built-in recipes, sorted by name.
func List() ([]*Recipe, error) {
	all, err := loadBuiltins()
	if err != nil {
		return nil, err
	}
	out := make([]*Recipe, 0, len(all))
	for _, name := range Names() {
		out = append(out, all[name].clone())
	}
	return out, nil
}

func (r *Recipe) clone() *Recipe {
	c := *r
	c.Certificates = slices.Clone(r.Certificates)
	c.Chain = slices.Clone(r.Chain)
	return &c
}
