package registry

// Authority is one row of the registry export. Empty cells are nil.
type Authority struct {
	Index   int // 0-based data row in the export, header excluded
	Name    string
	URLName *string
	Tags    *string
}

// Column headers of the all-authorities.csv export
const (
	ColumnName    = "Name"
	ColumnURLName = "URL name"
	ColumnTags    = "Tags"
)
