package validation

// Query addresses a cause inside a cause tree. Index is optional; Child
// continues the lookup inside the matched cause's Context.
type Query struct {
	Parameter string
	Index     *int
	Child     *Query
}

// At builds a Query for parameter, optionally narrowed to one index.
func At(parameter string, index ...int) Query {
	q := Query{Parameter: parameter}
	if len(index) > 0 {
		i := index[0]
		q.Index = &i
	}
	return q
}

// Then returns a copy of q whose innermost child is next.
func (q Query) Then(next Query) Query {
	if q.Child == nil {
		q.Child = &next
		return q
	}
	child := q.Child.Then(next)
	q.Child = &child
	return q
}

// FindError returns the message of the cause addressed by q, or "" when the
// path does not exist. It never panics.
func FindError(causes Causes, q Query) string {
	for _, cause := range causes {
		if cause.Parameter != q.Parameter {
			continue
		}
		if q.Index != nil && (cause.Index == nil || *cause.Index != *q.Index) {
			continue
		}
		if q.Child == nil {
			return cause.Message
		}
		return FindError(cause.Context, *q.Child)
	}
	return ""
}
