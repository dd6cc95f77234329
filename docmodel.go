// Package docmodel provides declarative field extraction over parsed HTML and
// XML documents. A Schema declares an ordered set of named fields, each backed
// by a selection rule (XPath, CSS, regex or document metadata) and a clean
// function that shapes the selection into a value or into nested fragments.
// Extracting a Fragment walks its fields in declaration order and produces an
// ordered Record, or reports that the fragment asked to be skipped.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, trafilatura/).
package docmodel
