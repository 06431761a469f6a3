// Package extrema locates local maxima and minima in a numeric sequence,
// e.g. R-peak candidates in a filtered ECG lead.
//
// Rules:
//
//	• A local maximum is a sample (or the first sample of a plateau) whose
//	  left and right neighbours are strictly lower; minima mirror this.
//	• Boundary samples qualify only with IncludeEdges; a constant sequence
//	  has no extrema.
//	• An optional threshold rejects maxima below it and minima above it.
//	• No two returned indices are closer than MinSeparation. Within any such
//	  window the most extreme candidate wins, measured as signed deviation
//	  from the sequence mean; ties go to the smallest index.
//
// The result is a Sequence: lazy (selection runs on the first pull), finite,
// ascending, and non-restartable. Materialize it with Collect when the
// indices are needed more than once.
//
// Complexity: O(n) scan + O(k log k) priority sort over k candidates.
package extrema
