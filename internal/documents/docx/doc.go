// Package docx writes and reads WordprocessingML (.docx) packages.
//
// Writer produces the editable documents served for feasts and services.
// Reader parses a package back into its title and paragraphs; it is used
// by tests and by the PDF converter's content check.
//
// Only the parts pew needs are written: content types, package and
// document relationships, a style sheet defining Title and Heading1,
// core properties and the document body.
package docx
