// Package intern implements a process-wide string interning table. Interned
// strings are deduplicated and assigned small integer Symbols, which are
// cheap to compare and to carry around in AST/token types.
//
// Each distinct string's bytes are copied into an internal/arena byte arena,
// whose chunks never move; the string that Value returns is a separate copy
// made from those arena bytes (see Table.Intern).
package intern

import (
	"fmt"
	"sync"

	"github.com/kkshinkai/kona-diagnostic/internal/arena"
)

// Symbol is an interned string, represented as a small opaque index into a
// Table. The zero Symbol is never issued by Intern; it is reserved to mean
// "no symbol" for callers that want a sentinel.
type Symbol uint32

// String implements fmt.Stringer by returning a debug form; it does not
// resolve the symbol back to its string (use Table.Value for that, since
// resolution requires knowing which Table produced this Symbol).
func (s Symbol) String() string {
	return fmt.Sprintf("intern.Symbol(%d)", uint32(s))
}

// AsStr resolves s against the process-wide table. It is a convenience for
// the common case of Intern(s).AsStr() == s; callers threading an explicit
// Table should use Table.Value instead.
func (s Symbol) AsStr() string {
	return Value(s)
}

// Table is an interning table: a two-way mapping between strings and
// Symbols, plus the storage backing the strings themselves.
//
// The storage is a byte arena rather than a slice of cloned strings. A plain
// []string of strings.Clone'd copies would work too, as far as the string
// *headers* go, but each individual string's backing array still lives
// whereever the runtime's allocator put it, and nothing stops Go's own
// allocator from being swapped out from under assumptions callers might make
// about that memory. The table keeps a copy of every distinct string's
// bytes in one arena; the strings it hands out are ordinary Go strings
// converted from those bytes, one allocation per distinct string. See
// DESIGN.md for the longer version of this argument.
//
// The zero Table is empty and ready to use.
type Table struct {
	mu    sync.Mutex
	store arena.Arena[byte]

	index   map[string]Symbol
	symbols []string // index i corresponds to Symbol(i+1).
}

// Intern interns s into this table, returning its Symbol. Interning the
// same (byte-equal) string twice returns the same Symbol both times.
//
// Safe for concurrent use.
func (t *Table) Intern(s string) Symbol {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sym, ok := t.index[s]; ok {
		return sym
	}

	// The arena guarantees the byte slice itself never moves, but converting
	// it to a string still copies: Go gives no portable way to alias a []byte
	// as a string without unsafe. We pay that one extra copy per distinct
	// interned string in exchange for not reaching for unsafe here; the
	// arena's job is only to keep the interner's allocation count and layout
	// predictable, not to eliminate this particular copy. See DESIGN.md.
	stored := t.store.AllocSlice([]byte(s))
	str := string(stored)

	sym := Symbol(len(t.symbols) + 1)
	t.symbols = append(t.symbols, str)

	if t.index == nil {
		t.index = make(map[string]Symbol)
	}
	t.index[str] = sym

	return sym
}

// Value returns the string that sym was interned from.
//
// If sym is the zero Symbol or is beyond the Symbols this Table has issued,
// this panics: unlike LookupError-returning queries elsewhere in this
// module, an unknown Symbol indicates a programmer error, not an expected
// boundary condition. A Symbol from another Table whose value falls within
// this Table's range is not detected and resolves to this Table's string.
func (t *Table) Value(sym Symbol) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(sym) - 1
	if idx < 0 || idx >= len(t.symbols) {
		panic(fmt.Sprintf("intern: symbol %v does not belong to this table", sym))
	}
	return t.symbols[idx]
}

// global is the process-wide interner backing the package-level Intern and
// Value functions.
var global Table

// Intern interns s into the process-wide table.
func Intern(s string) Symbol {
	return global.Intern(s)
}

// Value resolves a Symbol produced by the process-wide table back into its
// string.
func Value(sym Symbol) string {
	return global.Value(sym)
}
