package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     Kind
	}{
		{name: "class", selector: ".foo", want: KindClass},
		{name: "class with descendant", selector: ".foo bar", want: KindClass},
		{name: "id", selector: "#foo", want: KindID},
		{name: "id with attribute", selector: "#foo[bar]", want: KindID},
		{name: "attribute on tag", selector: "div[data-x]", want: KindAttribute},
		{name: "bare attribute", selector: `[name="q"]`, want: KindAttribute},
		{name: "attribute wins over space", selector: "form input[type=text]", want: KindAttribute},
		{name: "child combinator", selector: "div > span", want: KindComplex},
		{name: "child combinator without spaces", selector: "div>span", want: KindComplex},
		{name: "descendant", selector: "div span", want: KindComplex},
		{name: "unbalanced bracket", selector: "div > a[", want: KindComplex},
		{name: "tag", selector: "div", want: KindTag},
		{name: "closing bracket only", selector: "div]", want: KindTag},
		{name: "universal", selector: "*", want: KindTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.selector))
			// Deterministic
			assert.Equal(t, Classify(tt.selector), Classify(tt.selector))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "id", KindID.String())
	assert.Equal(t, "tag", KindTag.String())
	assert.Equal(t, "attribute", KindAttribute.String())
	assert.Equal(t, "complex", KindComplex.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestEveryKindHasStrategy(t *testing.T) {
	kinds := []Kind{KindClass, KindID, KindTag, KindAttribute, KindComplex}

	assert.Len(t, strategies, len(kinds))
	for _, k := range kinds {
		assert.NotNil(t, strategies[k], "missing strategy for %s", k)
	}
}
