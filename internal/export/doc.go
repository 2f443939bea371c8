// Package export renders boards and recorded transitions as SVG.
package export
