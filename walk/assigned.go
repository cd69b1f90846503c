package walk

// assignedSet holds the blank final variables that may have been assigned on
// the current path.  Keys are `*ast.LocalVar` and `*types.FieldEntry`.
type assignedSet map[interface{}]struct{}

func (as assignedSet) has(v interface{}) bool {
	_, ok := as[v]
	return ok
}

func (as assignedSet) clone() assignedSet {
	cas := make(assignedSet, len(as))
	for v := range as {
		cas[v] = struct{}{}
	}

	return cas
}

// union adds every variable of other to the set.
func (as assignedSet) union(other assignedSet) {
	for v := range other {
		as[v] = struct{}{}
	}
}

// joinAssigned merges the sets at the end of two alternative paths.  A path
// that cannot complete normally does not reach the join point, unless neither
// does.
func joinAssigned(a assignedSet, aCompletes bool, b assignedSet, bCompletes bool) assignedSet {
	switch {
	case aCompletes && !bCompletes:
		return a
	case bCompletes && !aCompletes:
		return b
	}

	a.union(b)
	return a
}
