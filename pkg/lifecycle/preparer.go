package lifecycle

// RepeatMaskerStats reports the outcome of RepeatMasker reformatting.
type RepeatMaskerStats struct {
	// Rows is the number of data rows written to the table.
	Rows int
	// Mapped is the number of repeat to class entries written to the map.
	Mapped int
	// Short is the number of rows with too few columns for the map.
	Short int
}

// FamilyStats reports the outcome of GFF family annotation.
type FamilyStats struct {
	// Mapped is the number of features with a known repeat class.
	Mapped int
	// Unknown is the number of features labeled UNKNOWN.
	Unknown int
	// Skipped is the number of comment and short lines.
	Skipped int
	// UnknownExamples holds a few motifs that were not found in the map.
	UnknownExamples []string
	// MapExamples holds a few keys of the class map.
	MapExamples []string
}

// Preparer converts raw repeat annotations into the TE table used by
// Runner.
type Preparer interface {
	// RepeatMasker reformats a RepeatMasker .out file into a tab separated
	// table and a repeat to class map.
	RepeatMasker(inPath, tablePath, mapPath string) (*RepeatMaskerStats, error)

	// Family appends the repeat class as the 10th column of every GFF
	// feature, using a map made by RepeatMasker.
	Family(gffPath, mapPath, outPath string) (*FamilyStats, error)
}
