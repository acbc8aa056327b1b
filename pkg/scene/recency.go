package scene

// Recency maps each canonical character to the dialogue index of their most
// recent line. One Recency lives for a whole segmentation run; it is not
// reset at scene boundaries.
type Recency struct {
	last map[string]int
}

// NewRecency creates an empty recency map.
func NewRecency() *Recency {
	return &Recency{last: make(map[string]int)}
}

// Touch records that name spoke at dialogue index at.
func (r *Recency) Touch(name string, at int) {
	r.last[name] = at
}

// LastSeen returns the dialogue index of name's latest line.
func (r *Recency) LastSeen(name string) (int, bool) {
	at, ok := r.last[name]
	return at, ok
}

// Len returns the number of characters seen so far.
func (r *Recency) Len() int {
	return len(r.last)
}
