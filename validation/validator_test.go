package validation

import (
	"strings"
	"testing"
)

func TestIsAlphanumeric(t *testing.T) {
	tests := []struct {
		input  string
		expect bool
	}{
		{"", true},
		{"Customer", true},
		{"order_line2", true},
		{"Straße", true},
		{"bad name!", false},
		{"with space", false},
		{"List<int>", false},
		{"a-b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsAlphanumeric(tt.input); got != tt.expect {
				t.Errorf("IsAlphanumeric(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestIsAlphanumericWithBrackets(t *testing.T) {
	tests := []struct {
		input  string
		expect bool
	}{
		{"int", true},
		{"List<int>", true},
		{"int[]", true},
		{"Map<K,V>", true},
		{"Func(int)", true},
		{"Map<K, V>", false},
		{"int;", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsAlphanumericWithBrackets(tt.input); got != tt.expect {
				t.Errorf("IsAlphanumericWithBrackets(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if IsBlank("") {
		t.Error("empty string is not blank")
	}
	if !IsBlank(" \t") {
		t.Error("whitespace should be blank")
	}
	if IsBlank(" x ") {
		t.Error("text is not blank")
	}
}

func TestCausesName(t *testing.T) {
	var c Causes
	c.Name("name", "")
	c.Name("type", "bad name!")
	c.Name("other", "fine")

	if len(c) != 2 {
		t.Fatalf("expected 2 causes, got %d: %v", len(c), c)
	}
	if c[0].Parameter != "name" || c[0].Message != MsgRequired {
		t.Errorf("unexpected first cause %+v", c[0])
	}
	if c[1].Parameter != "type" || c[1].Message != MsgAlphanumeric {
		t.Errorf("unexpected second cause %+v", c[1])
	}
}

func TestCausesOptionalName(t *testing.T) {
	var c Causes
	c.OptionalName("a", "")
	c.OptionalName("b", "   ")
	c.OptionalName("c", "x y")

	if len(c) != 2 {
		t.Fatalf("expected 2 causes, got %v", c)
	}
	if c[0].Message != MsgBlank || c[1].Message != MsgAlphanumeric {
		t.Errorf("unexpected causes %v", c)
	}
}

func TestCausesWrapSkipsEmptyChildren(t *testing.T) {
	var c Causes
	c.Wrap("properties", 0, nil)
	c.WrapField("multiplicity", Causes{})
	if !c.Valid() {
		t.Fatalf("wrapping empty children must not add causes, got %v", c)
	}

	c.Wrap("properties", 3, Causes{{Parameter: "name", Message: MsgRequired}})
	if len(c) != 1 || c[0].Message != MsgInvalid || *c[0].Index != 3 {
		t.Errorf("unexpected wrapped cause %+v", c)
	}
}

func TestCausesFlatten(t *testing.T) {
	var child Causes
	child.Add("name", MsgRequired)
	child.Add("type", MsgAlphanumericBrackets)

	var c Causes
	c.Add("name", MsgAlphanumeric)
	c.Wrap("properties", 1, child)

	got := c.Flatten()
	want := []string{
		"name: error.alphanumeric",
		"properties[1].name: error.required",
		"properties[1].type: error.alphanumeric_brackets",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}
