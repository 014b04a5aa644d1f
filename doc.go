// Package rnote holds module-wide runtime configuration shared by the
// stroke content engine packages.
//
// The engine itself lives in the subpackages: geometry and compose for the
// primitive types, strokes and document for the content model, render for
// the drawing backends, engine for the export container and pipeline, and
// xoppformat for Xournal++ interchange.
package rnote
