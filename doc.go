// Package carte assembles the technical dossier ("cartea tehnică") of a
// construction project into a single PDF.
//
// # Quick Start
//
// Create an assembler, build the dossier of a record and write the bytes:
//
//	asm, err := carte.NewAssembler()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := asm.Assemble(ctx, carte.Input{
//	    Record:  record,
//	    BaseDir: "/srv/dosare/bloc-a",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(carte.OutputFilename(record.Name), result.PDF, 0644)
//
// # Document Layout
//
// The dossier holds, in order:
//
//  1. A title page with the project name, the main parties and the date.
//  2. General data pages: the record's metadata as label/value rows,
//     continued on further pages when it does not fit.
//  3. For each category with at least one included item, in the order
//     design, execution, reception, monitoring: its borderou (table of
//     contents), a banner page, then one heading page per item followed
//     by every page of the item's PDF attachment.
//
// Categories without included items are left out and do not consume a
// section number. Borderou page numbers are final page numbers.
//
// # Attachments
//
// An attachment is given as bytes, a file path or a URL (http, https, s3).
// Attachments are fetched and validated in parallel, then copied in
// checklist order. An attachment that cannot be fetched or is not a
// readable PDF never fails the export: its item page shows the reason in
// red and Result.Failures lists it:
//
//	for _, f := range result.Failures {
//	    if errors.Is(f.Err, carte.ErrInvalidHeader) {
//	        // not a PDF
//	    }
//	}
//
// # Configuration
//
// Use functional options to customize the assembler:
//
//	asm, err := carte.NewAssembler(
//	    carte.WithLogger(slog.Default()),
//	    carte.WithFetchTimeout(time.Minute),
//	    carte.WithPrefetchWorkers(8),
//	    carte.WithS3(carte.S3Config{Region: "eu-central-1"}),
//	    carte.WithTitles("CARTEA TEHNICĂ", "A HALEI DE PRODUCȚIE"),
//	)
//
// # Text
//
// Generated pages use the PDF core Times fonts, which only cover ASCII.
// Every drawn string goes through a deterministic normalizer: diacritics
// are stripped (ș → s, ț → t, ă → a) and any remaining non-ASCII rune is
// dropped. The record description is Markdown and is flattened to plain
// paragraphs.
//
// # Batch Exports
//
// An Assembler holds configuration only and is safe for concurrent use.
// AssemblerPool bounds how many exports run at once:
//
//	pool := carte.NewAssemblerPool(carte.ResolvePoolSize(0))
//	asm, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(asm)
//
// # Checklists
//
// DefaultChecklists returns a record skeleton filled from a built-in
// checklist template ("standard" or "minimal"), every item excluded.
package carte
