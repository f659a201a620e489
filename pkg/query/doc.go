// Package query provides the immutable abstract syntax tree for structured
// repository queries.
//
// A query describes what to retrieve from a graph of named, path-addressable
// nodes: sources (named selectors and joins), join conditions, constraints
// and operands. The model is independent of any storage backend; evaluation
// engines interpret it against their own path- and name-resolution
// primitives.
//
// # Construction
//
// Every node is built through a constructor that validates required fields
// and returns an error wrapping ErrInvalidArgument when one is missing:
//
//	a := query.Must(query.NewSelectorName("a"))
//	b := query.Must(query.NewSelectorName("b"))
//	src := query.Must(query.NewJoin(
//	    query.Must(query.NewNamedSelector(a)),
//	    query.JoinInner,
//	    query.Must(query.NewNamedSelector(b)),
//	    query.Must(query.NewChildNodeJoinCondition(a, b)),
//	))
//
// Nodes are immutable after construction and safe to share between
// goroutines. Each node caches its structural hash; Equals compares the
// hash first and then every component.
//
// # Visitors
//
// Visitor has one method per concrete node type and Accept calls exactly
// one of them. Readable is the canonical stringifier used by every String
// method; PreOrder and PostOrder traverse a tree visiting each descendant
// once.
package query
