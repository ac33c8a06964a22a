package form

// Draft is a detached copy of an entity being edited. Value may be changed
// freely; nothing reaches the form until Save. Exactly one of Save or Discard
// closes the draft.
type Draft[T any] struct {
	Value T

	index  int // -1 for a new entry
	form   *Form
	apply  func(index int, v T) (int, error)
	closed bool
}

// Index returns the position being edited, or -1 for a new entry.
func (d *Draft[T]) Index() int {
	return d.index
}

// Save applies the draft: a new entry is appended, an existing one replaced.
// It returns the entry's position. On error the draft stays open so the
// caller can correct Value and retry.
func (d *Draft[T]) Save() (int, error) {
	if d.closed {
		return 0, ErrDraftClosed
	}
	i, err := d.apply(d.index, d.Value)
	if err != nil {
		return 0, err
	}
	d.close()
	return i, nil
}

// Discard drops the draft.
func (d *Draft[T]) Discard() {
	if !d.closed {
		d.close()
	}
}

func (d *Draft[T]) close() {
	d.closed = true
	d.form.draftOpen = false
}
