package ir

// Context is the lowering state of the function being emitted: its local
// slot map and an instruction counter.
type Context struct {
	fn      string
	slots   map[string]int
	emitted int
	funcs   int
}

func NewContext() *Context {
	return &Context{slots: make(map[string]int)}
}

// BeginFunc resets the slot map for a new function.
func (c *Context) BeginFunc(name string) {
	c.fn = name
	clear(c.slots)
	c.funcs++
}

// EndFunc leaves the current function.
func (c *Context) EndFunc() {
	c.fn = ""
	clear(c.slots)
}

// Func is the name of the function being lowered, "" between functions.
func (c *Context) Func() string { return c.fn }

// Bind assigns the next free slot to name. Rebinding keeps the first slot.
func (c *Context) Bind(name string) int {
	if slot, ok := c.slots[name]; ok {
		return slot
	}
	slot := len(c.slots)
	c.slots[name] = slot
	return slot
}

func (c *Context) Slot(name string) (int, bool) {
	slot, ok := c.slots[name]
	return slot, ok
}

// Count records one emitted instruction.
func (c *Context) Count() { c.emitted++ }

// Emitted is the number of instructions produced so far.
func (c *Context) Emitted() int { return c.emitted }

// Funcs is the number of functions begun so far.
func (c *Context) Funcs() int { return c.funcs }
