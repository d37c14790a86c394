// Package ucptrie implements a compact, immutable lookup structure mapping
// every Unicode code point (U+0000..U+10FFFF) to a small unsigned integer
// value, together with a mutable Builder that produces it.
//
// It is a Go port of ICU's UCPTrie ("utrie"): a multi-stage indirection
// table tuned so that BMP lookups cost one shift, one load, one add, and one
// load, while supplementary code points cost two further indirections and
// the top of Unicode compresses to a single constant value.
//
// A Builder accepts point and range assignments and is finalized exactly
// once into an immutable Trie. The Trie supports point lookup, same-value
// range discovery, and a code-point-aware string cursor over UTF-16 text.
package ucptrie
