// Package pipeline builds the technical dossier in three stages:
//   - Stager draws the title, general-data, banner and item pages and places
//     every validated attachment right after its item, recording the page
//     range of each unit in the staging document
//   - CompileIndex turns the recorded ranges into per-category TOC sections
//     (borderou) and knows how many pages each will take
//   - BuildPlan and Assemble fix the final page order, render the TOC with
//     final page numbers and copy every page into a new document
//
// Page numbers printed in the TOC are computed from the plan before the TOC
// is drawn, so no document is ever patched after the fact.
package pipeline
