package viewmodels

import (
	"npisearch/internal/ui/form"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/views"
)

// FieldTransformer turns form fields and their dropdowns into field views
type FieldTransformer struct {
	maxRows int
}

// NewFieldTransformer creates a transformer that shows at most maxRows menu rows
func NewFieldTransformer(maxRows int) *FieldTransformer {
	if maxRows <= 0 {
		maxRows = views.MaxMenuRows
	}
	return &FieldTransformer{maxRows: maxRows}
}

// Transform builds the view of one field. dd is nil for plain text fields.
func (ft *FieldTransformer) Transform(f *form.Field, dd *dropdown.Service, loading bool) views.FieldView {
	fv := views.FieldView{
		ID:       f.ID,
		Label:    f.Label,
		Input:    f.Input.View(),
		Focused:  f.Focused(),
		Dropdown: f.Kind == form.KindDropdown,
	}
	if dd == nil {
		return fv
	}

	fv.Inert = !dd.Attached()
	fv.Loading = loading
	if d := dd.Display(); d != nil {
		fv.Display = &views.DisplayView{Title: d.Title, Subtitle: d.Subtitle, Empty: d.Empty}
	}

	switch {
	case dd.ShowNoResults():
		fv.Open = true
		fv.ShowNoResults = true
		fv.NoResultsText = dd.Config().NoResultsText
	case dd.ShowGrid():
		fv.Open = true
		ft.fillRows(&fv, dd)
	}
	return fv
}

// fillRows windows the rendered list around the highlighted row
func (ft *FieldTransformer) fillRows(fv *views.FieldView, dd *dropdown.Service) {
	rendered := dd.Rendered()
	active := dd.ActiveIndex()

	offset := 0
	if active >= ft.maxRows {
		offset = active - ft.maxRows + 1
	}
	end := min(len(rendered), offset+ft.maxRows)

	fv.RowOffset = offset
	fv.TotalRows = len(rendered)
	for i := offset; i < end; i++ {
		item := rendered[i]
		fv.Rows = append(fv.Rows, views.RowView{
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			HasSubtitle: item.HasSubtitle,
			Active:      i == active,
			Selected:    dd.IsSelected(item),
		})
	}
}
