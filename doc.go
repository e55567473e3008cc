// Package lcdbdata defines the samples, genomic region handling, and output
// layout for building a small genomics test data set. The heavy lifting
// (downloading, aligning, subsetting) is wired together as a scipipe
// workflow in the pipeline package and driven by cmd/lcdb-test-data.
package lcdbdata
