package share

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/monakit/monakit/internal/mindmap"
)

// Calls with different inputs share nothing but the encoder and the
// read-only tables; run with -race.
func TestConcurrentCallsDoNotInterfere(t *testing.T) {
	const workers = 32

	inputs := make([]string, workers)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("  root((Card %d (hint)))\n    Branch %d (x) a\n      Sub %d\n        Leaf %d\n", i, i, i, i)
	}

	// Sequential results are the reference.
	enc := DefaultEncoder()
	want := make([]*Result, workers)
	for i, in := range inputs {
		res, err := enc.Encode(in)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		want[i] = res
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers*3)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inputs[i]

			cleaned := mindmap.Normalize(in)
			if cleaned != want[i].CleanedText {
				errs <- fmt.Errorf("worker %d: Normalize = %q, want %q", i, cleaned, want[i].CleanedText)
			}
			if tree := mindmap.Parse(cleaned); !reflect.DeepEqual(tree, want[i].StructureText) {
				errs <- fmt.Errorf("worker %d: Parse = %+v, want %+v", i, tree, want[i].StructureText)
			}

			res, err := enc.Encode(in)
			if err != nil {
				errs <- fmt.Errorf("worker %d: Encode failed: %v", i, err)
				return
			}
			if res.PakoValue != want[i].PakoValue {
				errs <- fmt.Errorf("worker %d: PakoValue differs from sequential run", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
