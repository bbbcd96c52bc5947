// Package pkg provides the core libraries for Listviz data structure
// visualization.
//
// # Overview
//
// Listviz builds Graphviz views of slot-arena containers: doubly linked
// lists and hash tables that keep all of their elements in flat, indexable
// slot arrays instead of scattered heap nodes. The pkg directory is
// organized into three main areas:
//
//  1. Containers ([arena], [hashtable], [stack]) - the data structures
//     themselves
//  2. Graph construction ([dot], [inspect]) - building DOT documents,
//     including diagrams of the containers' own physical layout
//  3. Output ([render], [cache]) - embedded Graphviz rendering with
//     artifact caching
//
// # Architecture
//
// The typical data flow through Listviz:
//
//	arena.List / hashtable.Table
//	         ↓
//	    [inspect] package (slot diagrams of live containers)
//	         ↓
//	    [dot] package (DOT document, itself arena-backed)
//	         ↓
//	    [render] package (embedded Graphviz → SVG/PNG)
//
// # Quick Start
//
// Build a list, diagram its slots, and render the diagram:
//
//	import (
//	    "context"
//	    "github.com/listviz/listviz/pkg/arena"
//	    "github.com/listviz/listviz/pkg/inspect"
//	    "github.com/listviz/listviz/pkg/render"
//	)
//
//	// 1. Build a container
//	l, _ := arena.New[int](10)
//	l.PushBack(1)
//	l.PushBack(2)
//
//	// 2. Diagram its physical layout
//	g, _ := inspect.List(l)
//
//	// 3. Render to SVG
//	svg, _ := render.Graph(context.Background(), render.NewEngine(), g, render.SVG)
//
// # Main Packages
//
// [arena] - A doubly linked list stored in one growable slot array. Links
// are indices, free slots form their own ring through the same array, and
// [arena.List.Linearize] compacts elements until physical order matches
// logical order.
//
// [hashtable] - A chained hash table whose bucket chains all live in one
// shared pair arena. Power-of-two bucket array, occupancy-based rehashing,
// and per-bucket introspection for visualization.
//
// [stack] - A growable LIFO stack that releases memory as it drains,
// backing the iterative graph traversals.
//
// [dot] - DOT document construction over the containers themselves: one
// shared node arena, subgraphs with rank constraints, and enum attribute
// names resolved through hashtable lookup tables.
//
// [inspect] - Slot diagrams of live containers: every physical slot as an
// HTML-table node, next/prev links on ports, the free ring, and head/tail
// markers.
//
// [render] - Embedded Graphviz via [github.com/goccy/go-graphviz], with
// concurrent batch rendering and content-keyed artifact caching.
//
// [cache] - Artifact cache backends: file (optionally zstd-compressed),
// memory, Redis, and null.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Process-wide hooks for render, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/arena/...    # Specific package
//	go test -run Example       # Examples only
//
// [arena]: https://pkg.go.dev/github.com/listviz/listviz/pkg/arena
// [hashtable]: https://pkg.go.dev/github.com/listviz/listviz/pkg/hashtable
// [stack]: https://pkg.go.dev/github.com/listviz/listviz/pkg/stack
// [dot]: https://pkg.go.dev/github.com/listviz/listviz/pkg/dot
// [inspect]: https://pkg.go.dev/github.com/listviz/listviz/pkg/inspect
// [render]: https://pkg.go.dev/github.com/listviz/listviz/pkg/render
// [cache]: https://pkg.go.dev/github.com/listviz/listviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/listviz/listviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/listviz/listviz/pkg/observability
package pkg
