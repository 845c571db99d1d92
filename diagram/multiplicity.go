package diagram

import (
	"strconv"
	"strings"

	"classdraw/validation"
)

// MultiplicityRange is one range of a UML multiplicity. The lower bound is
// only rendered when an upper bound is present; Unlimited stands for "*".
type MultiplicityRange struct {
	Lower     *int
	Upper     *int
	Unlimited bool
}

// Exactly returns the range "n".
func Exactly(n int) MultiplicityRange {
	return MultiplicityRange{Upper: &n}
}

// Between returns the range "lower..upper".
func Between(lower, upper int) MultiplicityRange {
	return MultiplicityRange{Lower: &lower, Upper: &upper}
}

// Many returns the range "*".
func Many() MultiplicityRange {
	return MultiplicityRange{Unlimited: true}
}

// AtLeast returns the range "lower..*".
func AtLeast(lower int) MultiplicityRange {
	return MultiplicityRange{Lower: &lower, Unlimited: true}
}

// IsSet reports whether the range carries an upper bound.
func (m MultiplicityRange) IsSet() bool {
	return m.Upper != nil || m.Unlimited
}

func (m MultiplicityRange) upperString() string {
	if m.Unlimited {
		return "*"
	}
	return strconv.Itoa(*m.Upper)
}

// String renders the range; an unset range renders as "".
func (m MultiplicityRange) String() string {
	if !m.IsSet() {
		return ""
	}
	if m.Lower == nil {
		return m.upperString()
	}
	return strconv.Itoa(*m.Lower) + ".." + m.upperString()
}

// Validate checks the bounds of the range.
func (m MultiplicityRange) Validate() validation.Causes {
	var c validation.Causes
	if m.Lower != nil && *m.Lower < 0 {
		c.Add("lower", validation.MsgMultiplicityNegative)
	}
	if m.Lower != nil && !m.IsSet() {
		c.Add("upper", validation.MsgMultiplicityUpperMissing)
	}
	if m.Upper != nil && !m.Unlimited {
		switch {
		case *m.Upper < 0:
			c.Add("upper", validation.MsgMultiplicityNegative)
		case *m.Upper == 0:
			c.Add("upper", validation.MsgMultiplicityZeroUpper)
		case m.Lower != nil && *m.Lower > *m.Upper:
			c.Add("lower", validation.MsgMultiplicityOrder)
		}
	}
	return c
}

// Clone returns a copy that shares no pointers with m.
func (m MultiplicityRange) Clone() MultiplicityRange {
	out := MultiplicityRange{Unlimited: m.Unlimited}
	if m.Lower != nil {
		l := *m.Lower
		out.Lower = &l
	}
	if m.Upper != nil {
		u := *m.Upper
		out.Upper = &u
	}
	return out
}

// Equal compares two ranges by value.
func (m MultiplicityRange) Equal(o MultiplicityRange) bool {
	return m.String() == o.String() && intPtrEqual(m.Lower, o.Lower)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m MultiplicityRange) toRecord() Record {
	r := Record{"lower": nil, "upper": nil}
	if m.Lower != nil {
		r["lower"] = *m.Lower
	}
	switch {
	case m.Unlimited:
		r["upper"] = "*"
	case m.Upper != nil:
		r["upper"] = *m.Upper
	}
	return r
}

func rangeFromRecord(rec Record) (MultiplicityRange, error) {
	rd := NewRecordReader(rec)
	m := MultiplicityRange{Lower: rd.OptionalInt("lower")}
	if s, ok := rd.Raw("upper").(string); ok {
		if s != "*" {
			return m, ErrMalformed
		}
		m.Unlimited = true
	} else {
		m.Upper = rd.OptionalInt("upper")
	}
	return m, rd.Err()
}

// Multiplicity is an ordered list of ranges, rendered as "[1..2, 5]".
type Multiplicity []MultiplicityRange

// String renders the multiplicity; empty renders as "".
func (m Multiplicity) String() string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m))
	for _, r := range m {
		if s := r.String(); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Validate validates every range, wrapping each range's causes by index.
func (m Multiplicity) Validate() validation.Causes {
	var c validation.Causes
	for i, r := range m {
		c.Wrap("ranges", i, r.Validate())
	}
	return c
}

// Clone deep-copies the multiplicity.
func (m Multiplicity) Clone() Multiplicity {
	if m == nil {
		return nil
	}
	out := make(Multiplicity, len(m))
	for i, r := range m {
		out[i] = r.Clone()
	}
	return out
}

// Equal compares two multiplicities range by range.
func (m Multiplicity) Equal(o Multiplicity) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if !m[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// ToRecords serializes the multiplicity.
func (m Multiplicity) ToRecords() []any {
	out := make([]any, len(m))
	for i, r := range m {
		out[i] = r.toRecord()
	}
	return out
}

// MultiplicityFromRecords decodes the output of ToRecords.
func MultiplicityFromRecords(recs []Record) (Multiplicity, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make(Multiplicity, 0, len(recs))
	for _, rec := range recs {
		r, err := rangeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
