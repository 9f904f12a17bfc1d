// Command spike hammers one store file from many concurrent writers, the way
// several editor windows sharing a store would. It checks that every write
// survives and that no reader ever observes a half-written file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/sidenote/pkg/adapters/fs"
)

const (
	numWriters       = 20
	writesPerWriter  = 10
	readerIterations = 200
)

func main() {
	log.Println("Starting spike: concurrent store writers")

	tmpDir, err := os.MkdirTemp("", "sidenote-spike-*")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	storePath := filepath.Join(tmpDir, "notes.json")
	log.Printf("Store file: %s", storePath)

	ctx := context.Background()
	start := time.Now()

	var wg sync.WaitGroup

	// Writers: each has its own Store instance, simulating separate processes.
	for w := 0; w < numWriters; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			store := fs.NewStore(fs.Config{Path: storePath})
			for i := 0; i < writesPerWriter; i++ {
				path := fmt.Sprintf("/src/writer%d.go", writer)
				if err := store.Upsert(ctx, path, i, fmt.Sprintf("writer %d note %d", writer, i)); err != nil {
					log.Printf("writer %d: upsert failed: %v", writer, err)
				}
			}
		}(w)
	}

	// Reader: loads continuously while writers race. Any corruption would
	// surface as a backup file appearing in the directory.
	wg.Add(1)
	go func() {
		defer wg.Done()
		store := fs.NewStore(fs.Config{Path: storePath})
		for i := 0; i < readerIterations; i++ {
			if _, err := store.Load(ctx); err != nil {
				log.Printf("reader: load failed: %v", err)
			}
			time.Sleep(time.Millisecond)
		}
	}()

	wg.Wait()

	store := fs.NewStore(fs.Config{Path: storePath})
	collection, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("final load failed: %v", err)
	}

	entries, _ := os.ReadDir(tmpDir)
	backups := 0
	for _, entry := range entries {
		if entry.Name() != "notes.json" {
			backups++
		}
	}

	log.Printf("Done in %v", time.Since(start))
	log.Printf("Final note count: %d (writers raced, last write per anchor wins)", len(collection.Notes))
	log.Printf("Backup files created: %d (non-zero means a reader saw a torn file)", backups)
}
