package canon

import (
	"io"

	"github.com/golang-collections/collections/stack"
)

// frame tracks how far into a sequence the traversal has progressed.
type frame struct {
	seq  Sequence
	next int
}

// Update feeds the canonical byte stream of v into w, in document order.
//
// A sequence writes its begin marker once and then, for every element
// including the first, the separator followed by the element. An atom
// writes its tag followed by its payload. Nesting is walked with an
// explicit stack of frames, maxDepth > 0 limits how deep sequences may
// nest, 0 leaves it unbounded.
//
// On error whatever has been written so far must be discarded.
func Update(w io.Writer, v Value, maxDepth int) error {
	seq, ok := v.(Sequence)
	if !ok {
		return writeAtom(w, v)
	}

	frames := stack.New()
	if err := beginSequence(w, frames, seq, maxDepth); err != nil {
		return err
	}
	for frames.Len() > 0 {
		top := frames.Peek().(*frame)
		if top.next == len(top.seq) {
			frames.Pop()
			continue
		}
		elem := top.seq[top.next]
		top.next++

		if _, err := io.WriteString(w, Separator); err != nil {
			return err
		}
		if inner, ok := elem.(Sequence); ok {
			if err := beginSequence(w, frames, inner, maxDepth); err != nil {
				return err
			}
			continue
		}
		if err := writeAtom(w, elem); err != nil {
			return err
		}
	}
	return nil
}

func beginSequence(w io.Writer, frames *stack.Stack, seq Sequence, maxDepth int) error {
	if maxDepth > 0 && frames.Len() >= maxDepth {
		return invalid("Update", "sequence nesting exceeds max depth %d", maxDepth)
	}
	if _, err := io.WriteString(w, string(TagSequence)); err != nil {
		return err
	}
	frames.Push(&frame{seq: seq})
	return nil
}

func writeAtom(w io.Writer, v Value) error {
	tag, payload, err := EncodeAtom(v)
	if err != nil {
		return err
	}
	// One write per atom, tag and payload are never split.
	b := make([]byte, 0, len(tag)+len(payload))
	b = append(b, tag...)
	b = append(b, payload...)
	_, err = w.Write(b)
	return err
}
