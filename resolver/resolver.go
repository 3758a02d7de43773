/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves alias references between tokens.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/mishtanim/token"
)

// ErrCircularReference indicates tokens that alias each other in a loop.
var ErrCircularReference = errors.New("circular reference detected")

// RefName converts an alias path to the referenced token's flattened
// name. DTCG paths use dots where flattened names use dashes.
func RefName(path string) string {
	return strings.ReplaceAll(path, ".", "-")
}

// Graph is a directed graph of alias dependencies between named
// values. Only whole-value aliases create edges.
type Graph struct {
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// BuildGraph builds the alias dependency graph for a set of named
// values.
func BuildGraph(values map[string]any) *Graph {
	graph := &Graph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool),
	}

	for name := range values {
		graph.nodes[name] = true
	}

	for name, value := range values {
		s, ok := value.(string)
		if !ok {
			continue
		}
		path, ok := token.AliasPath(s)
		if !ok {
			continue
		}
		dep := RefName(path)
		graph.dependencies[name] = append(graph.dependencies[name], dep)
		graph.dependents[dep] = append(graph.dependents[dep], name)
	}

	return graph
}

// Dependencies returns the names the given token depends on.
func (g *Graph) Dependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the names that depend on the given token.
func (g *Graph) Dependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *Graph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
func (g *Graph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := []string{}

	for node := range g.nodes {
		if cycle := g.findCycleDFS(node, visited, recStack, path); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *Graph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(path[cycleStart:], node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns names in dependency order (dependencies
// first). Returns an error if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: %v", ErrCircularReference, cycle)
	}

	visited := make(map[string]bool)
	result := []string{}

	for node := range g.nodes {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *Graph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}

// Resolve replaces whole-value aliases with the values they reference,
// following chains. References to names outside the set stay as their
// raw alias strings; a reference loop returns ErrCircularReference
// with the cycle path.
func Resolve(values map[string]any) (map[string]any, error) {
	graph := BuildGraph(values)
	sorted, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]any, len(values))
	unresolved := make(map[string]bool)

	for _, name := range sorted {
		value, ok := values[name]
		if !ok {
			// A dangling reference target; nothing to resolve.
			continue
		}
		s, isString := value.(string)
		if !isString {
			resolved[name] = value
			continue
		}
		path, isAlias := token.AliasPath(s)
		if !isAlias {
			resolved[name] = value
			continue
		}
		dep := RefName(path)
		if _, exists := values[dep]; !exists || unresolved[dep] {
			resolved[name] = value
			unresolved[name] = true
			continue
		}
		resolved[name] = resolved[dep]
	}

	return resolved, nil
}
