// Package parser provides a streaming, error-tolerant front end for C++
// source code: a tokenizer and an AST builder for the top-level
// declaration structure.
//
// # Overview
//
// The package works in two stages. The Tokenizer turns bytes into a flat
// token stream, resolving lexical concerns only (comments, strings,
// preprocessor directives, line continuations). The AstBuilder consumes
// that stream and yields one node per top-level construct: includes,
// classes, structs, free functions, and out-of-line method definitions.
// Function bodies are captured as raw token runs, never parsed as
// statements.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│  Tokenizer  │────▶│ AstBuilder  │
//	│  (bytes)    │     │  (tokens)   │     │  (nodes)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Streaming Interface
//
// Both stages are pull-based. The tokenizer produces one token per
// NextToken call; the builder produces one node per Next call and
// returns io.EOF when the input is exhausted:
//
//	b := parser.NewAstBuilder(src, "foo.h")
//	for {
//		node, err := b.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			// *ParseError: one construct was broken, the stream
//			// is already positioned past it.
//			continue
//		}
//		// ...
//	}
//
// Generate collects the remainder eagerly for callers that want a slice.
//
// # Error Recovery
//
// The builder never panics on malformed input. A structural failure is
// scoped to the construct being parsed: the builder skips ahead to the
// next plausible top-level boundary, returns a *ParseError carrying the
// file name and byte offset, and stays usable. Nodes yielded before the
// error remain valid, and no node is ever yielded half-built.
//
// # Semantic limits
//
// The parser recognizes declaration structure, not the full language.
// Preprocessor directives other than #include are not interpreted,
// except that "#if 0" regions are skipped wholesale. Data declarations,
// typedefs, enums, and unions are consumed without producing nodes.
// Template arguments are parsed structurally; "Foo<2 > 1>" style
// expressions inside argument lists are not understood.
//
// # Thread Safety
//
// A Tokenizer or AstBuilder instance is not safe for concurrent use.
// Independent instances share nothing and may run concurrently.
package parser
