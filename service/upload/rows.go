package upload

// ProductRow is one normalized catalog record, produced by the CSV adapter.
// Immutable once adapted; SKU is the dedup key and the only required field
// besides Name.
type ProductRow struct {
	Brand       string
	Name        string
	SKU         string
	Category    string
	Price       float64
	Description string
	Specs       string
}

// Mode selects the duplicate-resolution strategy for a run. The two modes are
// mutually exclusive: skip mode trusts the pre-built cache, update mode trusts
// the create call's own duplicate errors.
type Mode int

const (
	SkipExisting Mode = iota
	UpdateExisting
)

func (m Mode) String() string {
	if m == UpdateExisting {
		return "update-existing"
	}
	return "skip-existing"
}

// Result is the run-level aggregate. Counters accumulate across batches and
// are never decremented; a stopped run still reports everything completed so
// far.
type Result struct {
	Success   bool
	Stopped   bool
	Processed int
	New       int
	Updated   int
	Skipped   int
	Errors    int
	Total     int
	Message   string
}

// batchResult is the per-batch accumulator folded into Result by summation.
type batchResult struct {
	processed int
	new       int
	updated   int
	skipped   int
	errors    int
}
