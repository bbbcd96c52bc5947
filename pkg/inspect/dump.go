package inspect

import (
	"fmt"
	"io"

	"github.com/listviz/listviz/pkg/arena"
)

const dumpBorder = "+-------------------------------------+"

// Dump writes a fixed-width text table of every slot of the list,
// sentinel and free slots included. Columns hold the slot index, its
// value, and the prev and next links, with a free or busy tag.
func Dump[E any](w io.Writer, l *arena.List[E]) error {
	if _, err := fmt.Fprintf(w, "==> free: %d\n%s\n", l.FreeHead(), dumpBorder); err != nil {
		return err
	}
	for i := arena.Index(0); int(i) <= l.Cap()+1; i++ {
		s, err := l.Slot(i)
		if err != nil {
			return err
		}
		state := "busy"
		if s.Free {
			state = "free"
		}
		if _, err := fmt.Fprintf(w, "| %2d: (%02v) | (<-) %02d | (->) %02d | %s |\n",
			i, s.Value, s.Prev, s.Next, state); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, dumpBorder)
	return err
}
