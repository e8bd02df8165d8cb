package carte_test

import (
	"context"
	"fmt"
	"time"

	"github.com/dendoesit/carte"
)

// Example assembles a dossier with one included item and no attachment.
func Example() {
	asm, err := carte.NewAssembler()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := asm.Assemble(context.Background(), carte.Input{
		Record: &carte.ProjectRecord{
			Name:        "Bloc A",
			Beneficiary: "Primaria Cluj-Napoca",
			Categories: carte.Categories{
				Execution: []carte.ChecklistItem{
					{ID: "jurnal", Label: "Jurnal de santier", Included: true},
				},
			},
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// title, general data, borderou, banner, item
	fmt.Println(result.Pages)
	fmt.Println(result.Index[0].Title)
	// Output:
	// 5
	// Documentație de execuție
}

// Example_checklist starts a record from the built-in checklist and
// includes one item.
func Example_checklist() {
	record, err := carte.DefaultChecklists("minimal")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	record.Name = "Casa P+1"
	record.Categories.Design[0].Included = true
	record.Categories.Design = append(record.Categories.Design, carte.NewItem("anexa-1"))

	fmt.Println(len(record.Categories.Design), record.Categories.Design[3].Label)
	fmt.Println(carte.OutputFilename(record.Name))
	// Output:
	// 4 Document nou
	// casa-p1-cartea-tehnica.pdf
}

// Example_pool runs exports of a batch with bounded concurrency.
func Example_pool() {
	pool := carte.NewAssemblerPool(carte.ResolvePoolSize(2))
	names := []string{"Bloc A", "Bloc B", "Bloc C"}
	pages := make([]int, len(names))

	done := make(chan struct{})
	for i, name := range names {
		go func() {
			defer func() { done <- struct{}{} }()

			asm, err := pool.Acquire(context.Background())
			if err != nil {
				return
			}
			defer pool.Release(asm)

			res, err := asm.Assemble(context.Background(), carte.Input{Record: &carte.ProjectRecord{Name: name}})
			if err == nil {
				pages[i] = res.Pages
			}
		}()
	}
	for range names {
		<-done
	}

	fmt.Println(pages)
	// Output: [1 1 1]
}

// ExampleResolveDate shows the title page date syntax.
func ExampleResolveDate() {
	now := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	for _, v := range []string{"auto", "auto:long", "martie 2024"} {
		s, _ := carte.ResolveDate(v, now)
		fmt.Println(s)
	}
	// Output:
	// 05.03.2024
	// 5 martie 2024
	// martie 2024
}
