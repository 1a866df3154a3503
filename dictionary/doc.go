// The dictionary package reads and writes Stata "infile dictionary" files,
// which describe the column layout of a fixed-width data file.  A field
// declaration looks like:
//
//     _column(13)     byte     rscrinf   %1f  "WHETHER R IS SCREENER INFORMANT"
//
// Only lines containing _column(...) declare fields; everything else (the
// "infile dictionary {" header, the closing brace, comments) is skipped.
package dictionary
