package te_test

import (
	"testing"

	"github.com/gnames/tebreak/pkg/te"
	"github.com/stretchr/testify/assert"
)

func TestFamilyFromAttributes(t *testing.T) {
	tests := []struct {
		msg  string
		attr string
		res  string
	}{
		{"repeatmasker target", `Target "Motif:Gypsy-12_DM" 1 420`, "Gypsy-12_DM"},
		{"gff3 target", `ID=1;Target=Motif:Copia-3 10 200`, "Copia-3"},
		{"semicolon in motif", `Target "Motif:Gypsy;2_DM" 1 420`, "Gypsy;2_DM"},
		{"family key", `ID=te5;family=hAT-N1`, "hAT-N1"},
		{"name key", `ID=te5;Name=Helitron-2`, "Helitron-2"},
		{"nothing", `ID=te7;note=weird`, te.UnknownFamily},
		{"empty", ``, te.UnknownFamily},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, te.FamilyFromAttributes(v.attr), v.msg)
	}
}

func TestMotifFromAttributes(t *testing.T) {
	tests := []struct {
		msg  string
		attr string
		res  string
	}{
		{"quoted", `Target "Motif:Gypsy-12_DM" 1 420`, "Gypsy-12_DM"},
		{"semicolon", `Target "Motif:DNA;hAT-4" 1 420`, "DNA;hAT-4"},
		{"unquoted", `Target=Motif:Copia-3 10 200`, "Copia-3"},
		{"no motif", `ID=te5;family=hAT-N1`, ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, te.MotifFromAttributes(v.attr), v.msg)
	}
}

func TestFamilyMap(t *testing.T) {
	anns := []te.Annotation{
		{Family: "Gypsy-1", Superfamily: "LTR/Gypsy"},
		{Family: "Gypsy-1", Superfamily: "LTR/Gypsy"},
		{Family: "Gypsy-1", Superfamily: "LTR/Unknown"},
		{Family: "hAT-1", Superfamily: "DNA/hAT"},
		{Family: te.UnknownFamily, Superfamily: ""},
	}
	fm := te.NewFamilyMap(anns)

	assert.Equal(t, 3, fm.Len())
	assert.Equal(t, "LTR/Gypsy;LTR/Unknown", fm.Superfamily("Gypsy-1"))
	assert.Equal(t, "DNA/hAT", fm.Superfamily("hAT-1"))
	assert.Equal(t, "", fm.Superfamily(te.UnknownFamily))
	assert.Equal(t, "", fm.Superfamily("absent"))
	assert.Equal(t,
		[]string{"Gypsy-1", "hAT-1", te.UnknownFamily}, fm.Families())
}

func TestAnnotationSpan(t *testing.T) {
	a := te.Annotation{Seqid: "chr2", Start: 5, End: 9, Family: "L1"}
	iv, ok := a.Span()
	assert.True(t, ok)
	assert.Equal(t, "L1", iv.Label)
	assert.Equal(t, "chr2", iv.Chrom)

	a.Missing = true
	_, ok = a.Span()
	assert.False(t, ok)
}
