package validate

// Marks is a side-table decorator: it records the latest outcome per
// control without touching the control itself. Renderers that cannot style
// arbitrary widgets read the table instead.
type Marks struct {
	table map[Control]Result
}

// NewMarks constructs an empty side table.
func NewMarks() *Marks {
	return &Marks{table: make(map[Control]Result)}
}

// Apply records the outcome for the control.
func (m *Marks) Apply(control Control, result Result) {
	m.table[control] = result
}

// Lookup returns the last recorded outcome for the control.
func (m *Marks) Lookup(control Control) (Result, bool) {
	result, ok := m.table[control]
	return result, ok
}

// Len reports how many controls have recorded outcomes.
func (m *Marks) Len() int { return len(m.table) }
