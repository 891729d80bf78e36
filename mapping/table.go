package mapping

import (
	"bufio"
	"strings"
)

// NotFound is returned by the Find methods when no row matches.
const NotFound = -1

// defaultCapacity is roughly the size of the community database for one platform.
const defaultCapacity = 512

// LineError is a rejected line of a mapping database.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string { return e.Err.Error() }
func (e LineError) Unwrap() error { return e.Err }

// LoadResult summarizes a bulk load.
type LoadResult struct {
	Added    int
	Rejected []LineError
}

// Table is an append-only, ordered list of mappings. Lookups return the first
// matching row, so earlier entries win over later duplicates.
type Table struct {
	parser *Parser
	rows   []MappedJoystick
}

// NewTable creates an empty table that parses with p. A nil parser filters for
// the running platform.
func NewTable(p *Parser) *Table {
	if p == nil {
		p = NewParser()
	}
	return &Table{
		parser: p,
		rows:   make([]MappedJoystick, 0, defaultCapacity),
	}
}

// AddMappingFromString parses one line and appends it. Nothing is appended on error.
func (t *Table) AddMappingFromString(line string) error {
	m, err := t.parser.Parse(line)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, m)
	return nil
}

// AddMappingsFromStrings adds every line that parses and returns how many were added.
func (t *Table) AddMappingsFromStrings(lines []string) int {
	added := 0
	for _, l := range lines {
		if t.AddMappingFromString(l) == nil {
			added++
		}
	}
	return added
}

// AddMappingsFromFile adds the mappings of a database file's contents, one per
// line. Blank lines and lines starting with '#' are skipped; rejected lines are
// reported and do not stop the load.
func (t *Table) AddMappingsFromFile(text string) LoadResult {
	var res LoadResult
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), len(text)+1)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := t.AddMappingFromString(line); err != nil {
			res.Rejected = append(res.Rejected, LineError{Line: n, Text: line, Err: err})
			continue
		}
		res.Added++
	}
	return res
}

// NumMappings returns the number of rows.
func (t *Table) NumMappings() int { return len(t.rows) }

// At returns row i. It panics if i is out of range, like a slice index.
func (t *Table) At(i int) MappedJoystick { return t.rows[i] }

// FindMappingByGUID returns the index of the first row with guid, or NotFound.
func (t *Table) FindMappingByGUID(guid GUID) int {
	for i := range t.rows {
		if t.rows[i].GUID == guid {
			return i
		}
	}
	return NotFound
}

// FindMappingByName returns the index of the first row whose name equals name
// (case-sensitive, compared after the same truncation applied on load), or NotFound.
func (t *Table) FindMappingByName(name string) int {
	name = truncateName(name)
	if name == "" {
		return NotFound
	}
	for i := range t.rows {
		if t.rows[i].Name == name {
			return i
		}
	}
	return NotFound
}
