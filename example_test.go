package matchvault_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/matchvault/matchvault"
)

// Example_basic demonstrates opening a store, adding a snippet, and
// listing it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "matchvault-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Open the store targeting the temporary directory.
	// WithAutoInit(true) creates the root immediately.
	svc, err := matchvault.Open(tmpDir, matchvault.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Add a snippet to the default collection
	err = svc.Create(ctx, "", matchvault.Draft{
		Trigger: ":sig",
		Body:    "Regards,\nAna",
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. List it back
	snippets, _, err := svc.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, sn := range snippets {
		fmt.Printf("%s -> %s [%s]\n", sn.Trigger, sn.Label, sn.Format)
	}
	// Output:
	// :sig -> base [plain]
}

// Example_move demonstrates batch-moving snippets between collections.
func Example_move() {
	tmpDir, err := os.MkdirTemp("", "matchvault-move-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := matchvault.Open(tmpDir, matchvault.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, trigger := range []string{":one", ":two", ":three"} {
		if err := svc.Create(ctx, "", matchvault.Draft{Trigger: trigger, Body: trigger}); err != nil {
			log.Fatal(err)
		}
	}

	base := filepath.Join(tmpDir, "base.yml")
	target := filepath.Join(tmpDir, "work.yml")

	// Move the first and third snippet. The service processes ordinals
	// high-to-low internally, so the caller can pass them in any order.
	moved, err := svc.MoveMany(ctx, []string{
		base + "::0",
		base + "::2",
	}, target)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("moved %d snippets\n", moved)
	// Output:
	// moved 2 snippets
}
