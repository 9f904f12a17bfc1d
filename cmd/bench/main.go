// Command bench measures annotation store throughput: how load, save and
// query behave as the notes array grows. Run it before changing the
// persistence layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sidenote/pkg/adapters/fs"
	"github.com/aretw0/sidenote/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of annotations to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "sidenote_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	storePath := filepath.Join(benchDir, "notes.json")
	store := fs.NewStore(fs.Config{Path: storePath})
	ctx := context.Background()

	// 1. Bulk save: one collection with N annotations.
	fmt.Printf("Generating %d annotations...\n", *count)
	collection := core.Collection{Notes: make([]core.Annotation, 0, *count)}
	for i := 0; i < *count; i++ {
		collection.Notes = append(collection.Notes, core.Annotation{
			FilePath:  fmt.Sprintf("/src/pkg%d/file%d.go", i%20, i),
			Line:      i % 500,
			Text:      fmt.Sprintf("benchmark note %d", i),
			Timestamp: core.NewTimestamp(time.Now()),
		})
	}

	start := time.Now()
	if err := store.Save(ctx, collection); err != nil {
		panic(err)
	}
	fmt.Printf("Save of %d notes took: %v\n", *count, time.Since(start))

	// 2. Full load.
	start = time.Now()
	loaded, err := store.Load(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Load of %d notes took: %v\n", len(loaded.Notes), time.Since(start))

	// 3. Single upsert: the worst case, a full load-mutate-save cycle.
	start = time.Now()
	if err := store.Upsert(ctx, "/src/extra.go", 1, "one more"); err != nil {
		panic(err)
	}
	fmt.Printf("Single upsert took: %v\n", time.Since(start))

	// 4. Glob query across the whole collection.
	start = time.Now()
	matched, err := store.QueryGlob(ctx, "/src/pkg1/**")
	if err != nil {
		panic(err)
	}
	fmt.Printf("Glob query matched %d notes in: %v\n", len(matched), time.Since(start))

	if info, err := os.Stat(storePath); err == nil {
		fmt.Printf("Store file size: %d bytes\n", info.Size())
	}
}
