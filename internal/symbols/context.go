package symbols

import (
	"fmt"

	"rill/internal/source"
	"rill/internal/types"
)

// Hints provide optional capacity suggestions for the context arenas.
type Hints struct{ Scopes, Symbols uint }

// Context is the semantic state of one compilation unit: a stack of scopes
// rooted in the global scope, a flat table of the latest type per name,
// the return type of the function being checked and the function signatures.
//
// A Context has exactly one writer; it is not safe for concurrent use.
type Context struct {
	scopes  *arena[Scope]
	symbols *arena[Symbol]
	stack   []ScopeID
	table   map[string]types.Type
	fns     map[string]types.Signature
	ret     types.Type
	hasRet  bool
}

// NewContext returns a context seeded with the global scope.
func NewContext() *Context {
	return NewContextWithHints(Hints{})
}

func NewContextWithHints(h Hints) *Context {
	if h.Scopes == 0 {
		h.Scopes = 8
	}
	if h.Symbols == 0 {
		h.Symbols = 32
	}
	c := &Context{
		scopes:  newArena[Scope](h.Scopes),
		symbols: newArena[Symbol](h.Symbols),
		stack:   make([]ScopeID, 0, 4),
		table:   make(map[string]types.Type),
		fns:     make(map[string]types.Signature),
	}
	c.push(ScopeGlobal, source.Span{})
	return c
}

func (c *Context) push(kind ScopeKind, span source.Span) ScopeID {
	parent := NoScopeID
	if len(c.stack) > 0 {
		parent = c.stack[len(c.stack)-1]
	}
	id := ScopeID(c.scopes.allocate(Scope{
		Kind:      kind,
		Parent:    parent,
		Span:      span,
		NameIndex: make(map[string]SymbolID),
	}))
	c.stack = append(c.stack, id)
	return id
}

// EnterScope pushes an empty function scope.
func (c *Context) EnterScope() ScopeID {
	return c.push(ScopeFunction, source.Span{})
}

// EnterScopeKind pushes an empty scope of the given kind covering span.
func (c *Context) EnterScopeKind(kind ScopeKind, span source.Span) ScopeID {
	return c.push(kind, span)
}

// ExitScope pops the innermost scope. The global scope is never popped;
// ExitScope reports false when called on it.
func (c *Context) ExitScope() bool {
	if len(c.stack) <= 1 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	return true
}

// Depth counts open scopes including the global one.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Current returns the innermost scope id.
func (c *Context) Current() ScopeID {
	return c.stack[len(c.stack)-1]
}

func (c *Context) Scope(id ScopeID) *Scope {
	return c.scopes.get(uint32(id))
}

func (c *Context) Symbol(id SymbolID) *Symbol {
	return c.symbols.get(uint32(id))
}

// AddSymbol binds name in the innermost scope. It reports false, leaving the
// existing binding intact, when the name is already bound in that scope.
func (c *Context) AddSymbol(name string, ty types.Type) bool {
	_, ok := c.Declare(name, SymbolLocal, ty, source.Span{})
	return ok
}

// Declare binds name in the innermost scope and records its type in the
// global table.
func (c *Context) Declare(name string, kind SymbolKind, ty types.Type, span source.Span) (SymbolID, bool) {
	scopeID := c.Current()
	scope := c.Scope(scopeID)
	if existing, dup := scope.NameIndex[name]; dup {
		return existing, false
	}
	id := SymbolID(c.symbols.allocate(Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scopeID,
		Type:  ty,
		Span:  span,
	}))
	scope.NameIndex[name] = id
	scope.Symbols = append(scope.Symbols, id)
	c.table[name] = ty
	return id, true
}

// Lookup searches the open scopes innermost first.
func (c *Context) Lookup(name string) (types.Type, bool) {
	sym, ok := c.LookupSymbol(name)
	if !ok {
		return types.Type{}, false
	}
	return sym.Type, true
}

func (c *Context) LookupSymbol(name string) (*Symbol, bool) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if id, ok := c.Scope(c.stack[i]).NameIndex[name]; ok {
			return c.Symbol(id), true
		}
	}
	return nil, false
}

// GlobalType reads the flat table: the type most recently bound to name in
// any scope, open or closed. It is meant for dumps, not for resolution.
func (c *Context) GlobalType(name string) (types.Type, bool) {
	ty, ok := c.table[name]
	return ty, ok
}

func (c *Context) SetReturn(ty types.Type) {
	c.ret = ty
	c.hasRet = true
}

func (c *Context) ClearReturn() {
	c.ret = types.Type{}
	c.hasRet = false
}

// CurrentReturn is the declared return type of the function being checked.
func (c *Context) CurrentReturn() (types.Type, bool) {
	return c.ret, c.hasRet
}

// DeclareFunction registers a signature; it reports false if name is taken.
func (c *Context) DeclareFunction(name string, sig types.Signature) bool {
	if _, dup := c.fns[name]; dup {
		return false
	}
	c.fns[name] = sig
	return true
}

func (c *Context) Function(name string) (types.Signature, bool) {
	sig, ok := c.fns[name]
	return sig, ok
}

// Validate checks the scope stack: it is never empty, starts with the global
// scope and every scope's parent is the one below it.
func (c *Context) Validate() error {
	if len(c.stack) == 0 {
		return fmt.Errorf("symbols: empty scope stack")
	}
	if root := c.Scope(c.stack[0]); root == nil || root.Kind != ScopeGlobal || root.Parent.IsValid() {
		return fmt.Errorf("symbols: scope stack does not start at the global scope")
	}
	for i := 1; i < len(c.stack); i++ {
		s := c.Scope(c.stack[i])
		if s == nil {
			return fmt.Errorf("symbols: scope %d missing", c.stack[i])
		}
		if s.Parent != c.stack[i-1] {
			return fmt.Errorf("symbols: scope %d has parent %d, want %d", c.stack[i], s.Parent, c.stack[i-1])
		}
	}
	for id := 1; id <= c.symbols.len(); id++ {
		sym := c.symbols.get(uint32(id)) // #nosec G115 -- bounded by arena length
		scope := c.Scope(sym.Scope)
		if scope == nil || scope.NameIndex[sym.Name] != SymbolID(id) { // #nosec G115
			return fmt.Errorf("symbols: symbol %q not indexed by its scope", sym.Name)
		}
	}
	return nil
}
