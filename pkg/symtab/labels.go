package symtab

import "strconv"

// Labels allocates synthetic branch-target numbers. The counter starts at 0
// and is never reset.
type Labels struct {
	next int
}

// Next returns the current counter value, then increments it.
func (l *Labels) Next() int {
	k := l.next
	l.next++
	return k
}

// Peek returns the value the next call to Next will produce.
func (l *Labels) Peek() int {
	return l.next
}

// Name formats a synthetic label the way branch operands spell it.
func Name(k int) string {
	return "L" + strconv.Itoa(k)
}
