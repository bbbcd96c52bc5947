package cli

import (
	"strconv"
	"strings"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
)

// opsHelp lists the operation grammar shared by `inspect --ops` and the
// tui prompt.
const opsHelp = "pushback=N, pushfront=N, insertafter=I:N, set=I:N, delete=I, " +
	"popback, popfront, swap=A:B, linearize, grow=N"

// applyScript applies a comma-separated operation script to l, stopping at
// the first failure. Empty segments are skipped, so trailing commas are
// harmless.
func applyScript(l *arena.List[int], script string) error {
	for _, op := range strings.Split(script, ",") {
		if op = strings.TrimSpace(op); op == "" {
			continue
		}
		if err := applyOp(l, op); err != nil {
			return err
		}
	}
	return nil
}

// applyOp applies a single operation of the form name, name=arg, or
// name=arg:arg. Container errors pass through untouched so callers can
// show them verbatim.
func applyOp(l *arena.List[int], op string) error {
	name, rawArgs, _ := strings.Cut(op, "=")

	var args []int
	if rawArgs != "" {
		for _, raw := range strings.Split(rawArgs, ":") {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return errors.New(errors.ErrCodeInvalidArgument, "op %q: %q is not a number", op, raw)
			}
			args = append(args, n)
		}
	}

	checkArity := func(want int) error {
		if len(args) != want {
			return errors.New(errors.ErrCodeInvalidArgument, "op %q: want %d argument(s), got %d", op, want, len(args))
		}
		return nil
	}

	switch strings.ToLower(name) {
	case "pushback":
		if err := checkArity(1); err != nil {
			return err
		}
		_, err := l.PushBack(args[0])
		return err

	case "pushfront":
		if err := checkArity(1); err != nil {
			return err
		}
		_, err := l.PushFront(args[0])
		return err

	case "insertafter":
		if err := checkArity(2); err != nil {
			return err
		}
		_, err := l.InsertAfter(arena.Index(args[0]), args[1])
		return err

	case "set":
		if err := checkArity(2); err != nil {
			return err
		}
		return l.SetValue(arena.Index(args[0]), args[1])

	case "delete":
		if err := checkArity(1); err != nil {
			return err
		}
		return l.Delete(arena.Index(args[0]))

	case "popback":
		if err := checkArity(0); err != nil {
			return err
		}
		_, err := l.PopBack()
		return err

	case "popfront":
		if err := checkArity(0); err != nil {
			return err
		}
		_, err := l.PopFront()
		return err

	case "swap":
		if err := checkArity(2); err != nil {
			return err
		}
		return l.Swap(arena.Index(args[0]), arena.Index(args[1]))

	case "linearize":
		if err := checkArity(0); err != nil {
			return err
		}
		l.Linearize()
		return nil

	case "grow":
		if err := checkArity(1); err != nil {
			return err
		}
		return l.Grow(args[0])

	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown op %q (ops: %s)", name, opsHelp)
	}
}
