package validation

import (
	"fmt"
	"strings"
)

// Message keys carried by causes. They are looked up by the UI layer, which
// owns the translated text.
const (
	MsgRequired             = "error.required"
	MsgAlphanumeric         = "error.alphanumeric"
	MsgAlphanumericBrackets = "error.alphanumeric_brackets"
	MsgBlank                = "error.blank"
	MsgInvalid              = "error.invalid"

	MsgMultiplicityNegative     = "error.multiplicity.negative"
	MsgMultiplicityUpperMissing = "error.multiplicity.upper_missing"
	MsgMultiplicityOrder        = "error.multiplicity.order"
	MsgMultiplicityZeroUpper    = "error.multiplicity.zero_upper"

	MsgStaticAbstract         = "error.static_abstract"
	MsgModifiersMultiplicity  = "error.modifiers.multiplicity"
	MsgModifiersUniqueClash   = "error.modifiers.unique_conflict"
	MsgModifiersOrderingClash = "error.modifiers.order_conflict"
)

// Cause describes one violated rule. Composite fields nest the causes of
// their children in Context instead of flattening them.
type Cause struct {
	Parameter string `json:"parameter"`
	Message   string `json:"message"`
	Index     *int   `json:"index,omitempty"`
	Context   Causes `json:"context,omitempty"`
}

// Causes is an ordered list of causes. An empty list means valid.
type Causes []Cause

// Valid returns true when no rule was violated.
func (c Causes) Valid() bool {
	return len(c) == 0
}

// Add appends a leaf cause.
func (c *Causes) Add(parameter, message string) {
	*c = append(*c, Cause{Parameter: parameter, Message: message})
}

// Wrap appends a single MsgInvalid cause holding child, but only when child
// reports at least one violation.
func (c *Causes) Wrap(parameter string, index int, child Causes) {
	if len(child) == 0 {
		return
	}
	i := index
	*c = append(*c, Cause{
		Parameter: parameter,
		Message:   MsgInvalid,
		Index:     &i,
		Context:   child,
	})
}

// WrapField is Wrap for a non-indexed composite field.
func (c *Causes) WrapField(parameter string, child Causes) {
	if len(child) == 0 {
		return
	}
	*c = append(*c, Cause{Parameter: parameter, Message: MsgInvalid, Context: child})
}

// Name applies the usual identifier rules: required, then alphanumeric.
func (c *Causes) Name(parameter, value string) {
	switch {
	case value == "":
		c.Add(parameter, MsgRequired)
	case !IsAlphanumeric(value):
		c.Add(parameter, MsgAlphanumeric)
	}
}

// OptionalName is Name for fields that may be left empty.
func (c *Causes) OptionalName(parameter, value string) {
	switch {
	case value == "":
	case IsBlank(value):
		c.Add(parameter, MsgBlank)
	case !IsAlphanumeric(value):
		c.Add(parameter, MsgAlphanumeric)
	}
}

// Flatten renders the cause tree as dotted paths, e.g.
// "properties[0].name: error.required". It is meant for logs and CLI output.
func (c Causes) Flatten() []string {
	var out []string
	c.flatten("", &out)
	return out
}

func (c Causes) flatten(prefix string, out *[]string) {
	for _, cause := range c {
		path := prefix + cause.Parameter
		if cause.Index != nil {
			path = fmt.Sprintf("%s[%d]", path, *cause.Index)
		}
		if len(cause.Context) > 0 {
			cause.Context.flatten(path+".", out)
			continue
		}
		*out = append(*out, path+": "+cause.Message)
	}
}

// String joins the flattened causes with "; ".
func (c Causes) String() string {
	return strings.Join(c.Flatten(), "; ")
}
