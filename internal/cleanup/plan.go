package cleanup

import (
	"fmt"

	"github.com/assocpipe/apreset/internal/database"
)

// Operation is the kind of statement issued against a table.
type Operation string

const (
	// OpDrop removes a table and its contents entirely.
	OpDrop Operation = "drop"
	// OpTruncate removes all rows from a table while preserving its schema.
	OpTruncate Operation = "truncate"
)

// Step pairs a table name with the operation to perform on it.
type Step struct {
	Table string
	Op    Operation
}

// SQL renders the statement for this step with dialect-correct quoting.
func (s Step) SQL(d database.Dialect) string {
	ident := d.QuoteIdent(s.Table)
	switch s.Op {
	case OpDrop:
		return fmt.Sprintf("DROP TABLE %s", ident)
	case OpTruncate:
		return fmt.Sprintf("TRUNCATE TABLE %s", ident)
	default:
		panic(fmt.Sprintf("unknown cleanup operation %q", s.Op))
	}
}

// DefaultPlan returns the fixed sequence of steps that resets the state left
// behind by an association pipeline test run: the per-visit scratch tables
// are dropped, then the two persistent catalog tables are emptied. Order
// matters only in that the scratch tables reference rows in the catalogs.
func DefaultPlan() []Step {
	return []Step{
		{Table: "DiaSourceToObjectMatches_visit1", Op: OpDrop},
		{Table: "MopsPredToDiaSourceMatches_visit1", Op: OpDrop},
		{Table: "NewObjectIdPairs_visit1", Op: OpDrop},
		{Table: "BestMatch_visit1", Op: OpDrop},
		{Table: "MatchedObjects_visit1", Op: OpDrop},
		{Table: "NewObjects_visit1", Op: OpDrop},
		{Table: "DIASource", Op: OpTruncate},
		{Table: "VarObject", Op: OpTruncate},
	}
}
