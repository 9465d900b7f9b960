package textprep

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"
)

func newQueryCorpus(t *testing.T) *Corpus {
	t.Helper()
	c := NewCorpus(
		NewTextDocument("fox", language.English),
		NewTextDocument("dog", language.English),
		NewTextDocument("cat", language.English),
		NewTextDocument("fox dog", language.English),
	)
	if err := c.Update(); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	return c
}

func TestDocumentsWithAll(t *testing.T) {
	c := newQueryCorpus(t)

	tests := []struct {
		name  string
		terms []string
		want  []int
	}{
		{"single term", []string{"fox"}, []int{0, 3}},
		{"both terms", []string{"fox", "dog"}, []int{3}},
		{"unknown term", []string{"fox", "owl"}, []int{}},
		{"no terms", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.DocumentsWithAll(tt.terms...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DocumentsWithAll(%v) = %v, want %v", tt.terms, got, tt.want)
			}
		})
	}
}

func TestDocumentsWithAll_DoesNotMutatePostings(t *testing.T) {
	c := newQueryCorpus(t)

	c.DocumentsWithAll("fox", "dog")

	if got := c.DocumentsContaining("fox"); !reflect.DeepEqual(got, []int{0, 3}) {
		t.Errorf("postings for fox changed to %v", got)
	}
}

func TestDocumentsWithAny(t *testing.T) {
	c := newQueryCorpus(t)

	tests := []struct {
		terms []string
		want  []int
	}{
		{[]string{"fox", "dog"}, []int{0, 1, 3}},
		{[]string{"cat", "owl"}, []int{2}},
		{nil, []int{}},
	}

	for _, tt := range tests {
		if got := c.DocumentsWithAny(tt.terms...); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DocumentsWithAny(%v) = %v, want %v", tt.terms, got, tt.want)
		}
	}
}

func TestDocumentsExcluding(t *testing.T) {
	c := newQueryCorpus(t)

	if got := c.DocumentsExcluding("fox", "dog"); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("DocumentsExcluding(fox, dog) = %v, want [0]", got)
	}
	if got := c.DocumentsExcluding("fox", "owl"); !reflect.DeepEqual(got, []int{0, 3}) {
		t.Errorf("DocumentsExcluding(fox, owl) = %v, want [0 3]", got)
	}
}
