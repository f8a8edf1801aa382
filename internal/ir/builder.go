package ir

// builder accumulates a Function's basic-block graph one instruction at a
// time, tracking the block currently being appended to, the way a
// recursive-descent lowering pass naturally wants to (cur advances forward
// as control-flow constructs open and close new blocks; it never needs to
// revisit an earlier one).
type builder struct {
	fn       *Function
	cur      *Block
	nextVal  ValueID
	pool     *DataPool
	locals   map[string]string // name -> printable type, for the Locals table
}

func newBuilder(name string, pool *DataPool) *builder {
	fn := &Function{Name: name}
	b := &builder{fn: fn, pool: pool, locals: map[string]string{}}
	entry := fn.newBlock()
	fn.Entry = entry.ID
	b.cur = entry
	return b
}

func (b *builder) value() ValueID {
	id := b.nextVal
	b.nextVal++
	return id
}

// emit appends instr to the current block, assigning it a fresh Dst (any
// Dst already set on instr is overwritten), and returns that Dst.
func (b *builder) emit(instr Instr) ValueID {
	instr.Dst = b.value()
	b.cur.Instrs = append(b.cur.Instrs, instr)
	return instr.Dst
}

// terminate sets the current block's terminator, if it doesn't have one
// already — a block reached by an earlier "return" inside the same
// statement list is already closed, and a second terminator attempt (e.g.
// the implicit fallthrough after an exhaustively-returning if/else) is
// simply ignored.
func (b *builder) terminate(term Terminator) {
	if b.cur.terminated {
		return
	}
	b.cur.Term = term
	b.cur.terminated = true
}

func (b *builder) declareLocal(name, typ string) {
	if _, ok := b.locals[name]; !ok {
		b.locals[name] = typ
		b.fn.Locals = append(b.fn.Locals, Local{Name: name, Type: typ})
	}
}
