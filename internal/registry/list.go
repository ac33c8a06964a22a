package registry

// list is an ordered sequence whose entries are addressed by position.
type list[T any] struct {
	items []T
}

func (l *list[T]) len() int {
	return len(l.items)
}

func (l *list[T]) has(i int) bool {
	return i >= 0 && i < len(l.items)
}

func (l *list[T]) add(item T) int {
	l.items = append(l.items, item)
	return len(l.items) - 1
}

func (l *list[T]) get(i int) (T, bool) {
	if !l.has(i) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

func (l *list[T]) update(i int, item T) bool {
	if !l.has(i) {
		return false
	}
	l.items[i] = item
	return true
}

func (l *list[T]) remove(i int) bool {
	if !l.has(i) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *list[T]) swap(i, j int) bool {
	if !l.has(i) || !l.has(j) {
		return false
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	return true
}

func (l *list[T]) snapshot() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *list[T]) clear() {
	l.items = nil
}
