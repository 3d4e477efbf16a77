package models

// Product is a named catalog entry maintained through the API.
// Snapshots do not reference it by foreign key; Snapshot.Product is a
// free-text string derived from the instrument name.
type Product struct {
	ID   int64
	Name string
}
