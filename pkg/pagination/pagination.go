package pagination

// Metadata describes one page of a collection. Pages are 1-indexed.
type Metadata struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// New clamps page and limit into their valid ranges and computes the page
// count for total records.
func New(total, page, limit int) Metadata {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return Metadata{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

func (m Metadata) Offset() int {
	return (m.Page - 1) * m.Limit
}

// ShowingRange returns the inclusive 1-indexed bounds of the records on the
// current page, for "showing X to Y of Z" displays. Both bounds are zero when
// the page is past the end of the collection.
func (m Metadata) ShowingRange() (from, to int) {
	if m.Total == 0 {
		return 0, 0
	}

	from = m.Offset() + 1
	if from > m.Total {
		return 0, 0
	}

	to = m.Offset() + m.Limit
	if to > m.Total {
		to = m.Total
	}

	return from, to
}

func (m Metadata) HasPrevious() bool {
	return m.Page > 1
}

func (m Metadata) HasNext() bool {
	return m.Page < m.Pages
}
