package skill

// Catalog is a read-only index of skill records built once at startup.
type Catalog struct {
	records map[int]Record
}

// NewCatalog indexes records by id. Later duplicates replace earlier ones.
func NewCatalog(records []Record) *Catalog {
	index := make(map[int]Record, len(records))
	for _, r := range records {
		index[r.ID] = r
	}
	return &Catalog{records: index}
}

// Lookup returns the record for id. A miss is not an error; the skill simply
// has no detail page.
func (c *Catalog) Lookup(id int) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	r, ok := c.records[id]
	return r, ok
}

// Len reports the number of indexed records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}
