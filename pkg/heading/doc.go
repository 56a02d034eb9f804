// Package heading finds and rewrites the version shown in a document's
// heading markup.
//
// Detection tokenizes the document and inspects the text of each heading
// element (h1 unless configured otherwise) that contains no nested markup.
// The first text matching "v", an optional space, digits, ".", digits and any
// trailing text is the version. Rewriting replaces a literal version string
// inside such headings and leaves every other byte of the document as it was.
package heading
