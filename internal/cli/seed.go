package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/splitday/internal/catalog"
)

func RunSeedCommand(store catalog.Store, out io.Writer) error {
	entries, err := catalog.Builtin()
	if err != nil {
		return err
	}
	created, err := catalog.Seed(store, entries)
	if err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	fmt.Fprintf(out, "Seeded %d of %d catalog exercises\n", created, len(entries))
	return nil
}
