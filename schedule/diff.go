package schedule

// Update is the full current record for a changed row. The backing store
// only accepts whole-resource updates, so unchanged fields ride along.
type Update struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Fields
}

// Dirty reports whether any tracked field differs from the load-time
// snapshot. A nil host assignment is distinct from host id 0.
func (r Row) Dirty() bool {
	return !fieldsEqual(r.Fields, r.Original)
}

// Changeset returns the rows whose tracked fields changed since load, in
// input order, each carrying its full current record. An empty result means
// there is nothing to save and no write should be issued.
func Changeset(rows []Row) []Update {
	var updates []Update
	for _, r := range rows {
		if r.Dirty() {
			updates = append(updates, Update{ID: r.ID, Name: r.Name, Fields: r.Fields})
		}
	}
	return updates
}

func fieldsEqual(a, b Fields) bool {
	return a.DefaultDay == b.DefaultDay &&
		a.DefaultTime == b.DefaultTime &&
		intPtrEqual(a.DefaultHostID, b.DefaultHostID) &&
		a.IsActive == b.IsActive &&
		a.Cancelled == b.Cancelled &&
		a.CancelReason == b.CancelReason
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
