// Package pointio reads points from and writes cluster assignments to
// delimited text.
//
// Input is one point per record, all records with the same number of numeric
// fields. A leading record made only of non-numeric fields is taken as a
// header and skipped. Output repeats each point followed by the index of the
// cluster it was assigned to.
//
// Names ending in ".zst" or ".lz4" are transparently (de)compressed when
// opened through OpenBlob and CreateBlob.
package pointio
