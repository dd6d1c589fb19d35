// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"strings"
)

const (
	// SeverityWarning indicates a naming problem the run can survive.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a naming problem the caller chose to treat as fatal.
	SeverityError Severity = "error"

	// CodeNameCollision marks two or more games sharing a target name.
	CodeNameCollision = "name_collision"
	// CodeEmptyName marks a game whose name is nothing but the strip token.
	CodeEmptyName = "empty_name"
	// CodeDotName marks a game whose name is "." or "..", which would resolve
	// to the target root or its parent.
	CodeDotName = "dot_name"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic describes a naming problem found before any copy happens.
	// It is returned to callers rather than logged so the CLI controls rendering.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier (CodeNameCollision, CodeEmptyName).
		Code    string
		Message string
		// Name is the normalized name involved.
		Name string
		// Paths are the game directories involved, in discovery order.
		Paths []GamePath
	}
)

// NormalizeName strips every occurrence of token from the final segment of p.
func NormalizeName(p GamePath, token string) string {
	if token == "" {
		return p.Base()
	}
	return strings.ReplaceAll(p.Base(), token, "")
}

// NormalizeNames maps NormalizeName over paths, keeping order and length.
func NormalizeNames(paths []GamePath, token string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, NormalizeName(p, token))
	}
	return names
}

// Unusable reports whether name cannot be joined under a target root
// without escaping it or replacing the root itself.
func Unusable(name string) bool {
	return name == "" || name == "." || name == ".."
}

// Pair zips paths with names positionally. Both slices must have the same length.
func Pair(paths []GamePath, names []string) []Game {
	games := make([]Game, len(paths))
	for i, p := range paths {
		games[i] = Game{Path: p, Name: names[i]}
	}
	return games
}

// Collisions returns every name that appears more than once, mapped to the
// indices that claim it in ascending order.
func Collisions(names []string) map[string][]int {
	seen := make(map[string][]int, len(names))
	for i, name := range names {
		seen[name] = append(seen[name], i)
	}
	dups := make(map[string][]int)
	for name, idx := range seen {
		if len(idx) > 1 {
			dups[name] = idx
		}
	}
	return dups
}

// Check reports unusable names (see Unusable) and collisions among games. Diagnostics appear
// in discovery order of each problem's first occurrence, all with severity sev.
func Check(games []Game, sev Severity) []Diagnostic {
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	dups := Collisions(names)

	var diags []Diagnostic
	reported := make(map[string]bool)
	for i, g := range games {
		if Unusable(g.Name) && !reported[g.Name] {
			reported[g.Name] = true
			d := Diagnostic{
				Severity: sev,
				Code:     CodeEmptyName,
				Message:  fmt.Sprintf("%q normalizes to an empty name and would replace the target root", g.Path.Base()),
				Name:     g.Name,
				Paths:    []GamePath{g.Path},
			}
			if g.Name != "" {
				d.Code = CodeDotName
				d.Message = fmt.Sprintf("%q normalizes to %q, which resolves outside a game directory of the target", g.Path.Base(), g.Name)
			}
			diags = append(diags, d)
		}

		idx, collides := dups[g.Name]
		if !collides || idx[0] != i {
			continue
		}
		paths := make([]GamePath, 0, len(idx))
		bases := make([]string, 0, len(idx))
		for _, j := range idx {
			paths = append(paths, games[j].Path)
			bases = append(bases, games[j].Path.Base())
		}
		diags = append(diags, Diagnostic{
			Severity: sev,
			Code:     CodeNameCollision,
			Message:  fmt.Sprintf("%s all normalize to %q", strings.Join(bases, ", "), g.Name),
			Name:     g.Name,
			Paths:    paths,
		})
	}
	return diags
}
