package validation

import "testing"

func sampleTree() Causes {
	var param Causes
	param.Add("name", MsgRequired)

	var op Causes
	op.Add("name", MsgAlphanumeric)
	op.Wrap("params", 1, param)

	var prop Causes
	prop.Add("type", MsgAlphanumericBrackets)

	var root Causes
	root.Add("name", MsgRequired)
	root.Wrap("properties", 0, prop)
	root.Wrap("operations", 2, op)
	return root
}

func TestFindError(t *testing.T) {
	causes := sampleTree()

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"top level", At("name"), MsgRequired},
		{"indexed wrapper", At("properties", 0), MsgInvalid},
		{"wrapper without index", At("operations"), MsgInvalid},
		{"child", At("properties", 0).Then(At("type")), MsgAlphanumericBrackets},
		{"grandchild", At("operations", 2).Then(At("params", 1)).Then(At("name")), MsgRequired},
		{"wrong index", At("properties", 1), ""},
		{"missing parameter", At("stereotype"), ""},
		{"missing child", At("properties", 0).Then(At("name")), ""},
		{"child of leaf", At("name").Then(At("anything")), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindError(causes, tt.query); got != tt.want {
				t.Errorf("FindError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindErrorOnEmpty(t *testing.T) {
	if got := FindError(nil, At("name").Then(At("x", 4))); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestFindErrorIsPure(t *testing.T) {
	causes := sampleTree()
	before := causes.String()
	FindError(causes, At("operations", 2).Then(At("params", 1)))
	if causes.String() != before {
		t.Error("FindError mutated its input")
	}
}
